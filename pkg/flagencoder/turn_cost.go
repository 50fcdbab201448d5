package flagencoder

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/flagencoder/pkg/util"
)

// TurnFlags. encodes a turn restriction or a turn cost in seconds. costs are capped at MaxTurnCosts.
// without turn cost support every turn is free.
func (e *Encoder) TurnFlags(restricted bool, costs float64) Flags {
	if e.opts.MaxTurnCosts <= 0 {
		return 0
	}
	util.AssertPanic(!math.IsNaN(costs) && costs >= 0,
		fmt.Sprintf("%s: turn costs cannot be negative or NaN: %v", e.Name(), costs))
	if restricted || math.IsInf(costs, 1) {
		return e.turnRestriction.On(0)
	}
	costs = math.Min(costs, float64(e.opts.MaxTurnCosts))
	return e.turnCosts.SetValue(0, int64(math.Round(costs)))
}

func (e *Encoder) IsTurnRestricted(flags Flags) bool {
	if e.opts.MaxTurnCosts <= 0 {
		return false
	}
	return e.turnRestriction.IsSet(flags)
}

// TurnCosts. +Inf for restricted turns.
func (e *Encoder) TurnCosts(flags Flags) float64 {
	if e.opts.MaxTurnCosts <= 0 {
		return 0
	}
	if e.turnRestriction.IsSet(flags) {
		return math.Inf(1)
	}
	return float64(e.turnCosts.Value(flags))
}
