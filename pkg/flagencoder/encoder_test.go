package flagencoder

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/lintang-b-s/flagencoder/pkg"
	"github.com/lintang-b-s/flagencoder/pkg/osmway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wednesday 2015-03-04 08:30
func wednesdayMorning() time.Time {
	return time.Date(2015, time.March, 4, 8, 30, 0, 0, time.UTC)
}

func saturdayNoon() time.Time {
	return time.Date(2015, time.March, 7, 12, 0, 0, 0, time.UTC)
}

func newTestMotorcycle(t *testing.T, opts ...Option) *Encoder {
	t.Helper()
	e, err := NewMotorcycleEncoder(append([]Option{WithClock(wednesdayMorning)}, opts...)...)
	require.NoError(t, err)
	return e
}

func newTestCar(t *testing.T, opts ...Option) *Encoder {
	t.Helper()
	e, err := NewCarEncoder(append([]Option{WithClock(wednesdayMorning)}, opts...)...)
	require.NoError(t, err)
	return e
}

func way(tags map[string]string) *osmway.ReaderWay {
	return osmway.NewReaderWay(1, tags)
}

func TestEncoderLayout(t *testing.T) {
	car := newTestCar(t)
	first, next := car.BitRange()
	assert.Equal(t, 0, first)
	assert.Equal(t, 8, next)
	assert.Equal(t, 3, car.SpeedField().Shift())

	mc := newTestMotorcycle(t)
	first, next = mc.BitRange()
	assert.Equal(t, 0, first)
	// 3 base bits, speed, reverse speed, priority, curvature
	assert.Equal(t, 3+5+5+3+4, next)
	assert.Equal(t, mc.SpeedField().NextShift(), mc.ReverseSpeedField().Shift())
}

func TestAcceptWay(t *testing.T) {
	tests := []struct {
		name   string
		tags   map[string]string
		expect WayAcceptance
	}{
		{"primary", map[string]string{"highway": "primary"}, ACCEPTED},
		{"no highway", map[string]string{"name": "nowhere"}, REJECTED},
		{"footway", map[string]string{"highway": "footway"}, REJECTED},
		{"track without grade", map[string]string{"highway": "track"}, ACCEPTED},
		{"track grade1", map[string]string{"highway": "track", "tracktype": "grade1"}, ACCEPTED},
		{"track grade3", map[string]string{"highway": "track", "tracktype": "grade3"}, REJECTED},
		{"impassable", map[string]string{"highway": "primary", "impassable": "yes"}, REJECTED},
		{"status impassable", map[string]string{"highway": "primary", "status": "impassable"}, REJECTED},
		{"motorcycle no", map[string]string{"highway": "primary", "motorcycle": "no"}, REJECTED},
		{"access private", map[string]string{"highway": "service", "access": "private"}, REJECTED},
		{"motorcycle beats access", map[string]string{"highway": "service", "access": "no", "motorcycle": "yes"}, ACCEPTED},
		{"ford", map[string]string{"highway": "primary", "ford": "yes"}, REJECTED},
		{"railway rail", map[string]string{"highway": "primary", "railway": "rail"}, REJECTED},
		{"railway tram", map[string]string{"highway": "primary", "railway": "tram"}, ACCEPTED},
		{"ferry", map[string]string{"route": "ferry"}, ACCEPTED_FERRY},
		{"shuttle train", map[string]string{"route": "shuttle_train"}, ACCEPTED_FERRY},
		{"foot ferry", map[string]string{"route": "ferry", "foot": "yes"}, REJECTED},
		{"foot ferry open to motorcycles", map[string]string{"route": "ferry", "foot": "yes", "motorcycle": "yes"}, ACCEPTED_FERRY},
		{"ferry closed to motor vehicles", map[string]string{"route": "ferry", "motor_vehicle": "no"}, REJECTED},
		{"conditionally permitted now", map[string]string{"highway": "primary", "access": "no",
			"access:conditional": "yes @ (Mo-Fr 07:00-09:00)"}, ACCEPTED},
		{"conditionally permitted later", map[string]string{"highway": "primary", "access": "no",
			"access:conditional": "yes @ (Sa-Su)"}, REJECTED},
		{"conditionally restricted now", map[string]string{"highway": "primary",
			"motorcycle:conditional": "no @ (Mo-Fr 07:00-09:00)"}, REJECTED},
	}

	e := newTestMotorcycle(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, e.Acceptance(e.AcceptWay(way(tt.tags))))
		})
	}
}

func TestAcceptWayCarTracks(t *testing.T) {
	e := newTestCar(t)
	assert.True(t, e.IsAccept(e.AcceptWay(way(map[string]string{"highway": "track", "tracktype": "grade3"}))))
	assert.False(t, e.IsAccept(e.AcceptWay(way(map[string]string{"highway": "track", "tracktype": "grade4"}))))
	// car vocabulary reads motorcar, not motorcycle
	assert.True(t, e.IsAccept(e.AcceptWay(way(map[string]string{"highway": "primary", "motorcycle": "no"}))))
	assert.False(t, e.IsAccept(e.AcceptWay(way(map[string]string{"highway": "primary", "motorcar": "no"}))))
}

func TestAcceptWayIntendedValueOverridesPhysicalChecks(t *testing.T) {
	e := newTestMotorcycle(t)

	fordWithAccess := way(map[string]string{"highway": "primary", "ford": "yes", "motorcycle": "yes"})
	assert.Equal(t, ACCEPTED, e.Acceptance(e.AcceptWay(fordWithAccess)))

	railwayWithAccess := way(map[string]string{"highway": "primary", "railway": "rail", "access": "yes"})
	assert.Equal(t, ACCEPTED, e.Acceptance(e.AcceptWay(railwayWithAccess)))

	restrictedLater := way(map[string]string{"highway": "primary", "motorcycle": "permissive",
		"motorcycle:conditional": "no @ (Mo-Fr 07:00-09:00)"})
	assert.Equal(t, ACCEPTED, e.Acceptance(e.AcceptWay(restrictedLater)))

	// impassable is checked before access
	impassable := way(map[string]string{"highway": "primary", "impassable": "yes", "motorcycle": "yes"})
	assert.Equal(t, REJECTED, e.Acceptance(e.AcceptWay(impassable)))
}

func TestAcceptWayFordsAllowed(t *testing.T) {
	e := newTestMotorcycle(t, WithBlockFords(false))
	assert.True(t, e.IsAccept(e.AcceptWay(way(map[string]string{"highway": "primary", "ford": "yes"}))))
}

func TestAcceptWayConditionalClock(t *testing.T) {
	e := newTestMotorcycle(t, WithClock(saturdayNoon))
	w := way(map[string]string{"highway": "primary", "motorcycle:conditional": "no @ (Mo-Fr 07:00-09:00)"})
	assert.True(t, e.IsAccept(e.AcceptWay(w)))
}

func TestHandleWayTags(t *testing.T) {
	e := newTestMotorcycle(t)
	halfFactor := e.SpeedField().Factor() / 2

	tests := []struct {
		name          string
		tags          map[string]string
		forward       bool
		backward      bool
		roundabout    bool
		speed         float64
		reverseSpeed  float64
		priorityValue float64
	}{
		{"primary", map[string]string{"highway": "primary"}, true, true, false, 65, 65, 1},
		{"motorway", map[string]string{"highway": "motorway"}, true, true, false, 100, 100, 0},
		{"unclassified", map[string]string{"highway": "unclassified"}, true, true, false, 30, 30,
			float64(pkg.UNCHANGED) / float64(pkg.BEST)},
		{"oneway", map[string]string{"highway": "primary", "oneway": "yes"}, true, false, false, 65, 0, 1},
		{"reverse oneway", map[string]string{"highway": "primary", "oneway": "-1"}, false, true, false, 0, 65, 1},
		{"roundabout", map[string]string{"highway": "secondary", "junction": "roundabout"}, true, false, true, 60, 0, 1},
		{"maxspeed lower", map[string]string{"highway": "primary", "maxspeed": "50"}, true, true, false, 45, 45, 1},
		{"maxspeed higher", map[string]string{"highway": "primary", "maxspeed": "100"}, true, true, false, 65, 65, 1},
		{"maxspeed backward", map[string]string{"highway": "primary", "maxspeed": "100", "maxspeed:backward": "50"},
			true, true, false, 45, 45, 1},
		{"maxspeed mph", map[string]string{"highway": "primary", "maxspeed": "30 mph"}, true, true, false, 43.45, 43.45, 1},
		{"maxspeed motorcycle", map[string]string{"highway": "primary", "maxspeed:motorcycle": "40"},
			true, true, false, 36, 36, 1},
		{"bad surface", map[string]string{"highway": "primary", "surface": "gravel"}, true, true, false, 30, 30, 1},
		{"track grade1", map[string]string{"highway": "track", "tracktype": "grade1"}, true, true, false, 20, 20,
			float64(pkg.UNCHANGED) / float64(pkg.BEST)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := way(tt.tags)
			allowed := e.AcceptWay(w)
			require.True(t, e.IsAccept(allowed))

			flags := e.HandleWayTags(w, allowed, 0)
			assert.Equal(t, tt.forward, e.IsForward(flags))
			assert.Equal(t, tt.backward, e.IsBackward(flags))
			assert.Equal(t, tt.roundabout, e.IsRoundabout(flags))
			assert.InDelta(t, tt.speed, e.Speed(flags), halfFactor)
			assert.InDelta(t, tt.reverseSpeed, e.ReverseSpeed(flags), halfFactor)

			prio, err := e.Double(flags, pkg.FEATURE_PRIORITY)
			require.NoError(t, err)
			assert.InDelta(t, tt.priorityValue, prio, 1e-9)

			curvature, err := e.Double(flags, pkg.FEATURE_CURVATURE)
			require.NoError(t, err)
			assert.Equal(t, 1.0, curvature)
		})
	}
}

func TestHandleWayTagsAvoidAndPrefer(t *testing.T) {
	e := newTestMotorcycle(t)
	for _, highway := range []string{"motorway", "trunk", "motorroad", "residential"} {
		w := way(map[string]string{"highway": highway})
		f, err := e.Double(e.HandleWayTags(w, e.AcceptWay(w), 0), pkg.FEATURE_PRIORITY)
		require.NoError(t, err)
		assert.Equal(t, 0.0, f, highway)
	}
	for _, highway := range []string{"primary", "secondary", "tertiary"} {
		w := way(map[string]string{"highway": highway})
		f, err := e.Double(e.HandleWayTags(w, e.AcceptWay(w), 0), pkg.FEATURE_PRIORITY)
		require.NoError(t, err)
		assert.Equal(t, 1.0, f, highway)
	}
}

func TestHandleWayTagsFerry(t *testing.T) {
	tests := []struct {
		name  string
		tags  map[string]string
		speed float64
	}{
		{"no duration", map[string]string{"route": "ferry"}, 20},
		{"long trip", map[string]string{"route": "ferry", "duration": "02:00"}, 30},
		{"short trip without length", map[string]string{"route": "ferry", "duration": "00:30"}, 20},
		{"short trip with length", map[string]string{"route": "ferry", "duration": "00:30",
			osmway.ESTIMATED_DISTANCE: "21000"}, 30},
		{"slow trip floors at living street", map[string]string{"route": "ferry", "duration": "PT1H",
			osmway.ESTIMATED_DISTANCE: "1000"}, 5},
		{"non finite length", map[string]string{"route": "ferry", "duration": "00:30",
			osmway.ESTIMATED_DISTANCE: "NaN"}, 20},
		{"infinite length", map[string]string{"route": "ferry", "duration": "00:30",
			osmway.ESTIMATED_DISTANCE: "+Inf"}, 20},
	}

	for _, name := range []string{CAR, MOTORCYCLE} {
		e, err := NewEncoder(name)
		require.NoError(t, err)
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				w := way(tt.tags)
				allowed := e.AcceptWay(w)
				require.Equal(t, ACCEPTED_FERRY, e.Acceptance(allowed))

				flags := e.HandleWayTags(w, allowed, 0)
				assert.True(t, e.IsForward(flags))
				assert.True(t, e.IsBackward(flags))
				assert.Equal(t, tt.speed, e.Speed(flags))
				assert.Equal(t, tt.speed, e.ReverseSpeed(flags))
			})
		}
	}
}

func TestHandleWayTagsRejected(t *testing.T) {
	e := newTestMotorcycle(t)
	w := way(map[string]string{"highway": "primary", "motorcycle": "no"})
	assert.Equal(t, Flags(0), e.HandleWayTags(w, e.AcceptWay(w), 0))
}

func TestCarOneway(t *testing.T) {
	e := newTestCar(t)
	w := way(map[string]string{"highway": "primary", "oneway": "-1"})
	flags := e.HandleWayTags(w, e.AcceptWay(w), 0)
	assert.False(t, e.IsForward(flags))
	assert.True(t, e.IsBackward(flags))
	// car keeps one speed for both directions
	assert.Equal(t, 65.0, e.ReverseSpeed(flags))
	assert.Equal(t, 65.0, e.Speed(flags))
}

func TestLowSpeedClearsDirection(t *testing.T) {
	e := newTestMotorcycle(t)
	flags := e.SetAccess(0, true, true)

	forwardLow := e.SetSpeed(flags, 2)
	assert.False(t, e.IsForward(forwardLow))
	assert.True(t, e.IsBackward(forwardLow))
	assert.Equal(t, 0.0, e.Speed(forwardLow))

	reverseLow := e.SetReverseSpeed(e.SetReverseSpeed(flags, 60), 1)
	assert.True(t, e.IsForward(reverseLow))
	assert.False(t, e.IsBackward(reverseLow))
	assert.Equal(t, 0.0, e.ReverseSpeed(reverseLow))

	car := newTestCar(t)
	carFlags := car.SetSpeed(car.SetAccess(0, true, true), 50)
	carFlags = car.SetReverseSpeed(carFlags, 1)
	assert.False(t, car.IsBackward(carFlags))
	assert.Equal(t, 50.0, car.Speed(carFlags))
	// no reverse field: the shared speed survives
	assert.Equal(t, 50.0, car.ReverseSpeed(carFlags))
}

func TestSetSpeedClampsAndPanics(t *testing.T) {
	e := newTestMotorcycle(t)
	assert.Equal(t, 120.0, e.Speed(e.SetSpeed(0, 200)))
	assert.Panics(t, func() { e.SetSpeed(0, -1) })
	assert.Panics(t, func() { e.SetReverseSpeed(0, math.NaN()) })
}

func TestReverseFlags(t *testing.T) {
	e := newTestMotorcycle(t)
	w := way(map[string]string{"highway": "primary", "oneway": "yes"})
	flags := e.HandleWayTags(w, e.AcceptWay(w), 0)
	flags = e.SetReverseSpeed(flags, 30)
	flags = e.SetRoundabout(flags, true)

	reversed := e.ReverseFlags(flags)
	assert.False(t, e.IsForward(reversed))
	assert.True(t, e.IsBackward(reversed))
	assert.True(t, e.IsRoundabout(reversed))
	assert.Equal(t, 30.0, e.Speed(reversed))
	assert.Equal(t, 65.0, e.ReverseSpeed(reversed))

	for _, key := range []string{pkg.FEATURE_PRIORITY, pkg.FEATURE_CURVATURE} {
		before, err := e.Double(flags, key)
		require.NoError(t, err)
		after, err := e.Double(reversed, key)
		require.NoError(t, err)
		assert.Equal(t, before, after, key)
	}

	assert.Equal(t, flags, e.ReverseFlags(reversed))

	car := newTestCar(t)
	carFlags := car.SetProperties(50, true, false)
	assert.Equal(t, carFlags, car.ReverseFlags(car.ReverseFlags(carFlags)))
	assert.True(t, car.IsBackward(car.ReverseFlags(carFlags)))
	assert.Equal(t, 50.0, car.Speed(car.ReverseFlags(carFlags)))
}

func TestFlagsDefaultAndSetProperties(t *testing.T) {
	e := newTestMotorcycle(t)

	flags := e.FlagsDefault(true, true)
	assert.True(t, e.IsForward(flags))
	assert.True(t, e.IsBackward(flags))
	assert.Equal(t, 60.0, e.Speed(flags))
	assert.Equal(t, 60.0, e.ReverseSpeed(flags))

	forwardOnly := e.FlagsDefault(true, false)
	assert.Equal(t, 0.0, e.ReverseSpeed(forwardOnly))

	props := e.SetProperties(50, true, false)
	assert.True(t, e.IsForward(props))
	assert.False(t, e.IsBackward(props))
	assert.Equal(t, 50.0, e.Speed(props))
	assert.Equal(t, 0.0, e.ReverseSpeed(props))

	both := e.SetProperties(50, true, true)
	assert.Equal(t, 50.0, e.ReverseSpeed(both))
}

func TestDoubleUnsupportedKey(t *testing.T) {
	mc := newTestMotorcycle(t)
	_, err := mc.Double(0, "bendiness")
	assert.ErrorIs(t, err, ErrUnsupportedKey)

	car := newTestCar(t)
	_, err = car.Double(0, pkg.FEATURE_PRIORITY)
	assert.ErrorIs(t, err, ErrUnsupportedKey)
}

func TestSupports(t *testing.T) {
	car := newTestCar(t)
	assert.True(t, car.Supports(pkg.FEATURE_FASTEST))
	assert.False(t, car.Supports(pkg.FEATURE_PRIORITY))
	assert.False(t, car.Supports(pkg.FEATURE_CURVATURE))
	assert.False(t, car.Supports(pkg.FEATURE_TURN_COSTS))

	mc := newTestMotorcycle(t, WithTurnCosts(true))
	assert.True(t, mc.Supports(pkg.FEATURE_FASTEST))
	assert.True(t, mc.Supports(pkg.FEATURE_PRIORITY))
	assert.True(t, mc.Supports(pkg.FEATURE_CURVATURE))
	assert.True(t, mc.Supports(pkg.FEATURE_TURN_COSTS))
	assert.False(t, mc.Supports("shortest"))
}

func TestNewEncoderErrors(t *testing.T) {
	_, err := NewEncoder("bike")
	assert.ErrorIs(t, err, ErrUnknownProfile)

	_, err = NewEncoder(MOTORCYCLE, WithSpeedBits(0))
	assert.ErrorIs(t, err, ErrInvalidOption)

	e := newTestCar(t)
	_, err = e.DefineWayBits(0, 0, 64)
	assert.ErrorIs(t, err, ErrAlreadyDefined)
}

func TestVocabularyValidate(t *testing.T) {
	v := Vocabulary{
		Restrictions:     []string{"access"},
		RestrictedValues: osmway.NewSet("no", "private"),
		IntendedValues:   osmway.NewSet("yes", "no"),
	}
	assert.ErrorIs(t, v.validate(), ErrInvalidVocabulary)

	v.IntendedValues = osmway.NewSet("yes")
	assert.NoError(t, v.validate())

	assert.ErrorIs(t, Vocabulary{}.validate(), ErrInvalidVocabulary)
}

func TestProfiles(t *testing.T) {
	assert.Equal(t, []string{CAR, MOTORCYCLE}, Profiles())
}

func TestConcurrentEncoding(t *testing.T) {
	e := newTestMotorcycle(t)
	w := way(map[string]string{"highway": "primary", "oneway": "yes", "maxspeed": "50"})
	expected := e.HandleWayTags(w, e.AcceptWay(w), 0)

	var wg sync.WaitGroup
	results := make([]Flags, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.HandleWayTags(w, e.AcceptWay(w), 0)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, expected, got)
	}
}
