package flagencoder

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lintang-b-s/flagencoder/pkg"
)

// Options. construction time settings of a profile. they select field widths and table defaults,
// never the field order.
type Options struct {
	SpeedBits    int
	SpeedFactor  float64
	MaxTurnCosts int
	BlockFords   bool
	Clock        func() time.Time
}

type Option func(*Options) error

func defaultOptions() Options {
	return Options{
		SpeedBits:    pkg.DEFAULT_SPEED_BITS,
		SpeedFactor:  pkg.DEFAULT_SPEED_FACTOR,
		MaxTurnCosts: pkg.DEFAULT_MAX_TURNCOSTS,
		BlockFords:   pkg.DEFAULT_BLOCK_FORDS,
		Clock:        time.Now,
	}
}

func buildOptions(opts []Option) (Options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return Options{}, err
		}
	}
	return o, nil
}

func WithSpeedBits(bits int) Option {
	return func(o *Options) error {
		if bits < 1 || bits > 16 {
			return fmt.Errorf("%w: speedBits must be within [1, 16], got %d", ErrInvalidOption, bits)
		}
		o.SpeedBits = bits
		return nil
	}
}

func WithSpeedFactor(factor float64) Option {
	return func(o *Options) error {
		if !(factor > 0) {
			return fmt.Errorf("%w: speedFactor must be positive, got %v", ErrInvalidOption, factor)
		}
		o.SpeedFactor = factor
		return nil
	}
}

func WithMaxTurnCosts(maxTurnCosts int) Option {
	return func(o *Options) error {
		if maxTurnCosts < 0 {
			return fmt.Errorf("%w: maxTurnCosts cannot be negative, got %d", ErrInvalidOption, maxTurnCosts)
		}
		o.MaxTurnCosts = maxTurnCosts
		return nil
	}
}

// WithTurnCosts. true reserves a single turn restriction bit.
func WithTurnCosts(enabled bool) Option {
	if enabled {
		return WithMaxTurnCosts(1)
	}
	return WithMaxTurnCosts(0)
}

func WithBlockFords(block bool) Option {
	return func(o *Options) error {
		o.BlockFords = block
		return nil
	}
}

// WithClock. evaluation time for conditional tags.
func WithClock(clock func() time.Time) Option {
	return func(o *Options) error {
		if clock == nil {
			return fmt.Errorf("%w: nil clock", ErrInvalidOption)
		}
		o.Clock = clock
		return nil
	}
}

// ParseOptions. parses a property string like "speedBits=4|speedFactor=5|turnCosts=true|blockFords=false".
// unknown keys are ignored.
func ParseOptions(properties string) ([]Option, error) {
	var opts []Option
	for _, kv := range strings.Split(properties, "|") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not key=value", ErrInvalidOption, kv)
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)

		switch strings.ToLower(key) {
		case "speedbits":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("%w: speedBits=%q: %v", ErrInvalidOption, value, err)
			}
			opts = append(opts, WithSpeedBits(n))
		case "speedfactor":
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: speedFactor=%q: %v", ErrInvalidOption, value, err)
			}
			opts = append(opts, WithSpeedFactor(f))
		case "turncosts":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("%w: turnCosts=%q: %v", ErrInvalidOption, value, err)
			}
			opts = append(opts, WithTurnCosts(b))
		case "maxturncosts":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("%w: maxTurnCosts=%q: %v", ErrInvalidOption, value, err)
			}
			opts = append(opts, WithMaxTurnCosts(n))
		case "blockfords":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("%w: blockFords=%q: %v", ErrInvalidOption, value, err)
			}
			opts = append(opts, WithBlockFords(b))
		}
	}
	return opts, nil
}
