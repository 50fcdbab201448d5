package costfunction

import (
	"math"
	"testing"

	"github.com/lintang-b-s/flagencoder/pkg"
	"github.com/lintang-b-s/flagencoder/pkg/encodedvalue"
	"github.com/lintang-b-s/flagencoder/pkg/flagencoder"
	"github.com/lintang-b-s/flagencoder/pkg/osmway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type edge struct {
	flags    encodedvalue.Flags
	distance float64
}

func (e *edge) GetFlags() encodedvalue.Flags {
	return e.flags
}

func (e *edge) SetFlags(flags encodedvalue.Flags) {
	e.flags = flags
}

func (e *edge) GetDistance() float64 {
	return e.distance
}

func encode(t *testing.T, enc *flagencoder.Encoder, tags map[string]string, distance float64) *edge {
	t.Helper()
	w := osmway.NewReaderWay(1, tags)
	mask := enc.AcceptWay(w)
	require.True(t, enc.IsAccept(mask))
	e := &edge{flags: enc.HandleWayTags(w, mask, 0), distance: distance}
	enc.ApplyWayTags(w, e)
	return e
}

func TestNewCostFunction(t *testing.T) {
	car, err := flagencoder.NewCarEncoder()
	require.NoError(t, err)
	mc, err := flagencoder.NewMotorcycleEncoder()
	require.NoError(t, err)

	for _, name := range []string{pkg.FEATURE_FASTEST, pkg.FEATURE_PRIORITY, pkg.FEATURE_CURVATURE} {
		cf, err := NewCostFunction(name, mc)
		require.NoError(t, err, name)
		assert.Equal(t, name, cf.Name())
	}

	_, err = NewCostFunction(pkg.FEATURE_FASTEST, car)
	assert.NoError(t, err)
	_, err = NewCostFunction(pkg.FEATURE_CURVATURE, car)
	assert.ErrorIs(t, err, ErrUnsupportedFeature)
	_, err = NewCostFunction(pkg.FEATURE_TURN_COSTS, car)
	assert.ErrorIs(t, err, ErrUnsupportedFeature)
}

func TestTimeFunction(t *testing.T) {
	mc, err := flagencoder.NewMotorcycleEncoder()
	require.NoError(t, err)
	tf := NewTimeCostFunction(mc)

	// 60 km/h over 1 km
	e := encode(t, mc, map[string]string{"highway": "secondary", "oneway": "yes"}, 1000)
	assert.InDelta(t, 60.0, tf.GetWeight(e, false), 1e-9)
	assert.True(t, math.IsInf(tf.GetWeight(e, true), 1))

	e.flags = mc.SetSpeed(e.flags, 0)
	assert.True(t, math.IsInf(tf.GetWeight(e, false), 1))
}

func TestPriorityAndCurvatureFunction(t *testing.T) {
	mc, err := flagencoder.NewMotorcycleEncoder()
	require.NoError(t, err)
	tf := NewTimeCostFunction(mc)
	pf := NewPriorityCostFunction(mc)
	cf := NewCurvatureCostFunction(mc)

	preferred := encode(t, mc, map[string]string{"highway": "secondary"}, 1000)
	avoided := encode(t, mc, map[string]string{"highway": "trunk", "maxspeed": "66"}, 1000)
	// same speed on both
	require.Equal(t, mc.Speed(preferred.flags), mc.Speed(avoided.flags))
	assert.Equal(t, tf.GetWeight(preferred, false), tf.GetWeight(avoided, false))

	assert.InDelta(t, tf.GetWeight(preferred, false)/1.5, pf.GetWeight(preferred, false), 1e-9)
	assert.InDelta(t, tf.GetWeight(avoided, false)/0.5, pf.GetWeight(avoided, false), 1e-9)
	assert.Less(t, pf.GetWeight(preferred, false), pf.GetWeight(avoided, false))

	straight := encode(t, mc, map[string]string{"highway": "primary", osmway.ESTIMATED_DISTANCE: "1000"}, 1000)
	bendy := encode(t, mc, map[string]string{"highway": "primary", osmway.ESTIMATED_DISTANCE: "500"}, 1000)
	assert.InDelta(t, pf.GetWeight(straight, false), cf.GetWeight(straight, false), 1e-9)
	assert.InDelta(t, pf.GetWeight(bendy, false)*0.2, cf.GetWeight(bendy, false), 1e-9)

	loopy := encode(t, mc, map[string]string{"highway": "primary", osmway.ESTIMATED_DISTANCE: "200"}, 1000)
	assert.InDelta(t, pf.GetWeight(loopy, false)*curvatureFloor, cf.GetWeight(loopy, false), 1e-9)
}

func TestTurnCost(t *testing.T) {
	mc, err := flagencoder.NewMotorcycleEncoder(flagencoder.WithMaxTurnCosts(15))
	require.NoError(t, err)
	tf := NewTimeCostFunction(mc)
	assert.Equal(t, 12.0, tf.GetTurnCost(mc.TurnFlags(false, 12)))
	assert.True(t, math.IsInf(tf.GetTurnCost(mc.TurnFlags(true, 0)), 1))
}
