package costfunction

import (
	"github.com/lintang-b-s/flagencoder/pkg"
	"github.com/lintang-b-s/flagencoder/pkg/encodedvalue"
)

// PriorityFunction. travel time scaled down on preferred roads.
type PriorityFunction struct {
	*TimeFunction
}

func NewPriorityCostFunction(encoder FlagEncoder) *PriorityFunction {
	return &PriorityFunction{TimeFunction: NewTimeCostFunction(encoder)}
}

func (pf *PriorityFunction) Name() string {
	return pkg.FEATURE_PRIORITY
}

func (pf *PriorityFunction) GetWeight(e EdgeAttributes, reverse bool) float64 {
	return pf.TimeFunction.GetWeight(e, reverse) / (0.5 + pf.priority(e.GetFlags()))
}

func (pf *PriorityFunction) priority(flags encodedvalue.Flags) float64 {
	p, err := pf.encoder.Double(flags, pkg.FEATURE_PRIORITY)
	if err != nil {
		return float64(pkg.UNCHANGED) / float64(pkg.BEST)
	}
	return p
}

// curvatureFloor. keeps the straightest bucket from zeroing the weight.
const curvatureFloor = 0.1

// CurvatureFunction. priority weight scaled down on bendy roads.
type CurvatureFunction struct {
	*PriorityFunction
}

func NewCurvatureCostFunction(encoder FlagEncoder) *CurvatureFunction {
	return &CurvatureFunction{PriorityFunction: NewPriorityCostFunction(encoder)}
}

func (cf *CurvatureFunction) Name() string {
	return pkg.FEATURE_CURVATURE
}

func (cf *CurvatureFunction) GetWeight(e EdgeAttributes, reverse bool) float64 {
	curvature, err := cf.encoder.Double(e.GetFlags(), pkg.FEATURE_CURVATURE)
	if err != nil {
		curvature = 1
	}
	return cf.PriorityFunction.GetWeight(e, reverse) * max(curvature, curvatureFloor)
}
