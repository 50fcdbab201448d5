package osmparser

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/lintang-b-s/flagencoder/pkg/concurrent"
	"github.com/lintang-b-s/flagencoder/pkg/datastructure"
	"github.com/lintang-b-s/flagencoder/pkg/encodedvalue"
	"github.com/lintang-b-s/flagencoder/pkg/flagencoder"
	"github.com/lintang-b-s/flagencoder/pkg/geo"
	"github.com/lintang-b-s/flagencoder/pkg/osmway"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

const (
	defaultBatchSize = 10000
)

// Importer. turns the ways of an osm extract into edge flags for every profile of an encoding manager.
type Importer struct {
	em        *flagencoder.EncodingManager
	logger    *zap.Logger
	workers   int
	batchSize int
}

type ImporterOption func(*Importer)

func WithWorkers(workers int) ImporterOption {
	return func(im *Importer) {
		im.workers = workers
	}
}

func WithBatchSize(batchSize int) ImporterOption {
	return func(im *Importer) {
		if batchSize > 0 {
			im.batchSize = batchSize
		}
	}
}

func NewImporter(em *flagencoder.EncodingManager, logger *zap.Logger, opts ...ImporterOption) *Importer {
	im := &Importer{
		em:        em,
		logger:    logger,
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

type encodedWay struct {
	way      *osmway.ReaderWay
	flags    encodedvalue.Flags
	points   []geo.Coordinate
	distance float64
	accepted bool
}

// Parse. first pass collects the nodes of candidate ways, second pass resolves their coordinates
// and encodes the ways.
func (im *Importer) Parse(ctx context.Context, mapFile string) (*datastructure.EdgeFlagStorage, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wayNodes := make(map[int64]struct{})
	scanner := osmpbf.New(ctx, f, 0)
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	countWays := 0
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok || len(way.Nodes) < 2 {
			continue
		}
		if im.em.AcceptWay(osmway.FromOSM(way)) == 0 {
			continue
		}
		if (countWays+1)%50000 == 0 {
			im.logger.Sugar().Infof("scanning openstreetmap ways: %d...", countWays+1)
		}
		countWays++
		for _, node := range way.Nodes {
			wayNodes[int64(node.ID)] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("scan ways: %w", err)
	}
	scanner.Close()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	coords := make(map[int64]geo.Coordinate, len(wayNodes))
	ways := make([]*osmway.ReaderWay, 0, countWays)
	scanner = osmpbf.New(ctx, f, 0)
	defer scanner.Close()
	scanner.SkipRelations = true
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			if _, ok := wayNodes[int64(o.ID)]; ok {
				coords[int64(o.ID)] = geo.NewCoordinate(o.Lat, o.Lon)
			}
		case *osm.Way:
			if len(o.Nodes) < 2 {
				continue
			}
			if w := osmway.FromOSM(o); im.em.AcceptWay(w) != 0 {
				ways = append(ways, w)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan nodes: %w", err)
	}

	return im.ImportWays(ctx, ways, coords)
}

// ImportWays. encodes the given ways, one edge per accepted way, then runs the curvature pass.
func (im *Importer) ImportWays(ctx context.Context, ways []*osmway.ReaderWay,
	coords map[int64]geo.Coordinate) (*datastructure.EdgeFlagStorage, error) {
	storage := datastructure.NewEdgeFlagStorageWithSize(len(ways), 0)
	pool := concurrent.NewWorkerPool(im.workers, func(way *osmway.ReaderWay) encodedWay {
		return im.encodeWay(way, coords)
	})

	skipped := 0
	for start := 0; start < len(ways); start += im.batchSize {
		end := min(start+im.batchSize, len(ways))
		results, err := pool.Run(ctx, ways[start:end])
		if err != nil {
			return nil, err
		}
		for _, res := range results {
			if !res.accepted {
				skipped++
				continue
			}
			edgeID := storage.AddEdge(res.way.ID(), res.points, res.distance, res.flags)
			im.em.ApplyWayTags(res.way, storage.Edge(edgeID))
		}
		im.logger.Sugar().Infof("processing openstreetmap ways: %d...", end)
	}

	im.logger.Info("import done",
		zap.Int("edges", storage.NumberOfEdges()),
		zap.Int("skipped", skipped),
		zap.String("encoders", im.em.String()))
	return storage, nil
}

// encodeWay. only reads the encoding manager, safe to run on many ways at once.
func (im *Importer) encodeWay(way *osmway.ReaderWay, coords map[int64]geo.Coordinate) encodedWay {
	points := make([]geo.Coordinate, 0, len(way.Nodes()))
	for _, id := range way.Nodes() {
		c, ok := coords[id]
		if !ok {
			return encodedWay{way: way}
		}
		points = append(points, c)
	}
	if len(points) < 2 {
		return encodedWay{way: way}
	}

	way.SetTag(osmway.ESTIMATED_DISTANCE, strconv.FormatFloat(geo.BeelineDistance(points), 'f', -1, 64))

	mask := im.em.AcceptWay(way)
	if mask == 0 {
		return encodedWay{way: way}
	}
	return encodedWay{
		way:      way,
		flags:    im.em.HandleWayTags(way, mask, 0),
		points:   points,
		distance: geo.RoadLength(points),
		accepted: true,
	}
}
