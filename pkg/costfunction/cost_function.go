package costfunction

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/flagencoder/pkg"
	"github.com/lintang-b-s/flagencoder/pkg/encodedvalue"
)

var ErrUnsupportedFeature = errors.New("weighting not supported by encoder")

type EdgeAttributes interface {
	GetFlags() encodedvalue.Flags
	// GetDistance. meters
	GetDistance() float64
}

// FlagEncoder. read side of a vehicle profile.
type FlagEncoder interface {
	Name() string
	Speed(flags encodedvalue.Flags) float64
	ReverseSpeed(flags encodedvalue.Flags) float64
	IsForward(flags encodedvalue.Flags) bool
	IsBackward(flags encodedvalue.Flags) bool
	Double(flags encodedvalue.Flags, key string) (float64, error)
	Supports(feature string) bool
	TurnCosts(turnFlags encodedvalue.Flags) float64
}

type CostFunction interface {
	Name() string
	// GetWeight. cost of traversing the edge, +Inf when the direction is closed.
	GetWeight(e EdgeAttributes, reverse bool) float64
	GetTurnCost(turnFlags encodedvalue.Flags) float64
}

func NewCostFunction(name string, encoder FlagEncoder) (CostFunction, error) {
	if !encoder.Supports(name) {
		return nil, fmt.Errorf("%w: %s for %s", ErrUnsupportedFeature, name, encoder.Name())
	}
	switch name {
	case pkg.FEATURE_FASTEST:
		return NewTimeCostFunction(encoder), nil
	case pkg.FEATURE_PRIORITY:
		return NewPriorityCostFunction(encoder), nil
	case pkg.FEATURE_CURVATURE:
		return NewCurvatureCostFunction(encoder), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFeature, name)
}
