package usecases

import (
	"errors"
	"math"
	"strconv"

	"github.com/lintang-b-s/flagencoder/pkg"
	"github.com/lintang-b-s/flagencoder/pkg/encodedvalue"
	"github.com/lintang-b-s/flagencoder/pkg/flagencoder"
	"github.com/lintang-b-s/flagencoder/pkg/geo"
	"github.com/lintang-b-s/flagencoder/pkg/osmway"
	"github.com/lintang-b-s/flagencoder/pkg/util"
	"go.uber.org/zap"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidGeometry = errors.New("invalid geometry")
)

type ProfileInfo struct {
	Name     string
	Version  int
	Features []string
	FirstBit int
	NextBit  int
}

type DecodedFlags struct {
	Flags        uint64
	Forward      bool
	Backward     bool
	Roundabout   bool
	Speed        float64
	ReverseSpeed float64
	Priority     *float64
	PriorityCode string
	Curvature    *float64
}

type EncodeResult struct {
	Acceptance string
	// empty for road classes outside pkg.OsmHighwayType
	Highway    string
	Decoded    DecodedFlags
	Distance   float64
	Beeline    float64
}

// edge. in-memory edge for the curvature pass of a single way.
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

type FlagService struct {
	log *zap.Logger
	em  *flagencoder.EncodingManager
}

func NewFlagService(log *zap.Logger, em *flagencoder.EncodingManager) *FlagService {
	return &FlagService{log: log, em: em}
}

func (fs *FlagService) encoder(profile string) (*flagencoder.Encoder, error) {
	enc, err := fs.em.Encoder(profile)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrNotFound, "%s: %s", ErrProfileNotFound, profile)
	}
	return enc, nil
}

func (fs *FlagService) Profiles() []ProfileInfo {
	encoders := fs.em.Encoders()
	infos := make([]ProfileInfo, 0, len(encoders))
	for _, enc := range encoders {
		first, next := enc.BitRange()
		features := make([]string, 0, 4)
		for _, f := range []string{pkg.FEATURE_FASTEST, pkg.FEATURE_PRIORITY, pkg.FEATURE_CURVATURE,
			pkg.FEATURE_TURN_COSTS} {
			if enc.Supports(f) {
				features = append(features, f)
			}
		}
		infos = append(infos, ProfileInfo{
			Name:     enc.Name(),
			Version:  enc.Version(),
			Features: features,
			FirstBit: first,
			NextBit:  next,
		})
	}
	return infos
}

func (fs *FlagService) Encode(profile string, tags map[string]string) (EncodeResult, error) {
	enc, err := fs.encoder(profile)
	if err != nil {
		return EncodeResult{}, err
	}
	way := osmway.NewReaderWay(0, tags)
	mask := enc.AcceptWay(way)
	flags := enc.HandleWayTags(way, mask, 0)
	return EncodeResult{
		Acceptance: enc.Acceptance(mask).String(),
		Highway:    pkg.GetHighwayType(way.Tag("highway")).String(),
		Decoded:    decode(enc, flags),
	}, nil
}

func (fs *FlagService) Decode(profile string, flags uint64) (DecodedFlags, error) {
	enc, err := fs.encoder(profile)
	if err != nil {
		return DecodedFlags{}, err
	}
	return decode(enc, encodedvalue.Flags(flags)), nil
}

// Curvature. encodes the way and runs the curvature pass with lengths taken from the polyline.
func (fs *FlagService) Curvature(profile string, tags map[string]string, polyline string) (EncodeResult, error) {
	enc, err := fs.encoder(profile)
	if err != nil {
		return EncodeResult{}, err
	}
	points, err := geo.DecodePolyline(polyline)
	if err != nil {
		return EncodeResult{}, util.WrapErrorf(err, util.ErrBadParamInput, "%s", ErrInvalidGeometry)
	}
	if len(points) < 2 {
		return EncodeResult{}, util.WrapErrorf(ErrInvalidGeometry, util.ErrBadParamInput,
			"polyline needs at least two points")
	}

	beeline := geo.BeelineDistance(points)
	way := osmway.NewReaderWay(0, tags)
	way.SetTag(osmway.ESTIMATED_DISTANCE, strconv.FormatFloat(beeline, 'f', -1, 64))

	mask := enc.AcceptWay(way)
	e := &edge{flags: enc.HandleWayTags(way, mask, 0), distance: geo.RoadLength(points)}
	if enc.IsAccept(mask) {
		enc.ApplyWayTags(way, e)
	}
	fs.log.Debug("curvature computed", zap.String("profile", profile), zap.Float64("road_distance", e.distance),
		zap.Float64("beeline", beeline))

	return EncodeResult{
		Acceptance: enc.Acceptance(mask).String(),
		Highway:    pkg.GetHighwayType(way.Tag("highway")).String(),
		Decoded:    decode(enc, e.flags),
		Distance:   e.distance,
		Beeline:    beeline,
	}, nil
}

func decode(enc *flagencoder.Encoder, flags encodedvalue.Flags) DecodedFlags {
	d := DecodedFlags{
		Flags:        flags.Uint64(),
		Forward:      enc.IsForward(flags),
		Backward:     enc.IsBackward(flags),
		Roundabout:   enc.IsRoundabout(flags),
		Speed:        enc.Speed(flags),
		ReverseSpeed: enc.ReverseSpeed(flags),
	}
	if v, err := enc.Double(flags, pkg.FEATURE_PRIORITY); err == nil {
		d.Priority = &v
		d.PriorityCode = pkg.PriorityCode(math.Round(v * float64(pkg.BEST.Value()))).String()
	}
	if v, err := enc.Double(flags, pkg.FEATURE_CURVATURE); err == nil {
		d.Curvature = &v
	}
	return d
}
