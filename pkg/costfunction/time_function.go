package costfunction

import (
	"math"

	"github.com/lintang-b-s/flagencoder/pkg"
	"github.com/lintang-b-s/flagencoder/pkg/encodedvalue"
)

// TimeFunction. travel time in seconds.
type TimeFunction struct {
	encoder FlagEncoder
}

func NewTimeCostFunction(encoder FlagEncoder) *TimeFunction {
	return &TimeFunction{encoder: encoder}
}

func (tf *TimeFunction) Name() string {
	return pkg.FEATURE_FASTEST
}

func (tf *TimeFunction) GetWeight(e EdgeAttributes, reverse bool) float64 {
	flags := e.GetFlags()
	var speed float64
	if reverse {
		if !tf.encoder.IsBackward(flags) {
			return math.Inf(1)
		}
		speed = tf.encoder.ReverseSpeed(flags)
	} else {
		if !tf.encoder.IsForward(flags) {
			return math.Inf(1)
		}
		speed = tf.encoder.Speed(flags)
	}
	if speed == 0 {
		return math.Inf(1)
	}
	return e.GetDistance() / (speed / 3.6)
}

func (tf *TimeFunction) GetTurnCost(turnFlags encodedvalue.Flags) float64 {
	return tf.encoder.TurnCosts(turnFlags)
}
