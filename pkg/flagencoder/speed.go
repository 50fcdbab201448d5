package flagencoder

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lintang-b-s/flagencoder/pkg"
	"github.com/lintang-b-s/flagencoder/pkg/util"
)

// ParseSpeed. parses an osm maxspeed value into km/h. ok is false for absent, unparseable
// or unlimited values ("none", "signals", "walk").
func ParseSpeed(value string) (float64, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return 0, false
	}
	switch value {
	case "none", "signals", "variable", "walk":
		return 0, false
	}

	unit := 1.0
	switch {
	case strings.HasSuffix(value, "mph"):
		unit = pkg.KM_MILE
		value = strings.TrimSuffix(value, "mph")
	case strings.HasSuffix(value, "knots"):
		unit = pkg.KM_KNOT
		value = strings.TrimSuffix(value, "knots")
	case strings.HasSuffix(value, "km/h"):
		value = strings.TrimSuffix(value, "km/h")
	case strings.HasSuffix(value, "kmh"):
		value = strings.TrimSuffix(value, "kmh")
	case strings.HasSuffix(value, "kph"):
		value = strings.TrimSuffix(value, "kph")
	}

	speed, err := util.StringToFloat64(value)
	if err != nil || math.IsNaN(speed) || speed <= 0 {
		return 0, false
	}
	return speed * unit, true
}

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDuration. parses an osm duration into minutes. accepts "MM", "HH:MM", "HH:MM:SS" and
// ISO 8601 durations like "PT1H30M".
func ParseDuration(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	if m := isoDuration.FindStringSubmatch(strings.ToUpper(value)); m != nil {
		weights := []float64{24 * 60, 60, 1, 1.0 / 60}
		minutes := 0.0
		seen := false
		for i, w := range weights {
			if m[i+1] == "" {
				continue
			}
			n, _ := strconv.Atoi(m[i+1])
			minutes += float64(n) * w
			seen = true
		}
		return minutes, seen
	}

	parts := strings.Split(value, ":")
	if len(parts) > 3 {
		return 0, false
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, false
		}
		nums[i] = n
	}

	switch len(nums) {
	case 1:
		return float64(nums[0]), true
	case 2:
		return float64(nums[0]*60 + nums[1]), true
	default:
		return float64(nums[0]*60+nums[1]) + float64(nums[2])/60, true
	}
}
