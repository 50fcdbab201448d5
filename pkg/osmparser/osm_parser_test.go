package osmparser

import (
	"context"
	"testing"

	"github.com/lintang-b-s/flagencoder/pkg"
	"github.com/lintang-b-s/flagencoder/pkg/datastructure"
	"github.com/lintang-b-s/flagencoder/pkg/flagencoder"
	"github.com/lintang-b-s/flagencoder/pkg/geo"
	"github.com/lintang-b-s/flagencoder/pkg/osmway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newWay(id int64, tags map[string]string, nodes ...int64) *osmway.ReaderWay {
	w := osmway.NewReaderWay(id, tags)
	w.SetNodes(nodes)
	return w
}

func TestImportWays(t *testing.T) {
	em, err := flagencoder.NewEncodingManager("car,motorcycle", 4)
	require.NoError(t, err)
	im := NewImporter(em, zap.NewNop(), WithWorkers(2), WithBatchSize(2))

	coords := map[int64]geo.Coordinate{
		1: geo.NewCoordinate(-7.7500, 110.3700),
		2: geo.NewCoordinate(-7.7550, 110.3750),
		3: geo.NewCoordinate(-7.7600, 110.3700),
		4: geo.NewCoordinate(-7.7700, 110.3700),
	}
	ways := []*osmway.ReaderWay{
		newWay(100, map[string]string{"highway": "primary"}, 1, 2, 3),
		newWay(101, map[string]string{"highway": "footway"}, 3, 4),
		newWay(102, map[string]string{"highway": "primary"}, 3, 99),
		newWay(103, map[string]string{"highway": "residential", "oneway": "yes"}, 3, 4),
		newWay(104, map[string]string{"highway": "primary"}, 4),
	}

	storage, err := im.ImportWays(context.Background(), ways, coords)
	require.NoError(t, err)
	require.Equal(t, 2, storage.NumberOfEdges())

	assert.Equal(t, int64(100), storage.GetOsmWayId(0))
	assert.Equal(t, int64(103), storage.GetOsmWayId(1))

	points := storage.GetPointsInbetween(0)
	assert.Len(t, points, 3)
	assert.InDelta(t, geo.RoadLength(points), storage.GetDistance(0), 1e-9)

	mc, err := em.Encoder(flagencoder.MOTORCYCLE)
	require.NoError(t, err)
	car, err := em.Encoder(flagencoder.CAR)
	require.NoError(t, err)

	flags := storage.GetFlags(0)
	assert.Equal(t, 65.0, mc.Speed(flags))
	assert.Equal(t, 65.0, car.Speed(flags))

	ratio := geo.BeelineDistance(points) / geo.RoadLength(points)
	curvature, err := mc.Double(flags, pkg.FEATURE_CURVATURE)
	require.NoError(t, err)
	assert.InDelta(t, float64(int(ratio*ratio*10))/10, curvature, 1e-9)
	assert.Less(t, curvature, 1.0)

	oneway := storage.GetFlags(1)
	assert.True(t, car.IsForward(oneway))
	assert.False(t, car.IsBackward(oneway))

	// the input way carries the computed beeline
	beeline, ok := ways[0].FloatTag(osmway.ESTIMATED_DISTANCE)
	assert.True(t, ok)
	assert.InDelta(t, geo.BeelineDistance(points), beeline, 1e-6)
}

func TestImportWaysCanceled(t *testing.T) {
	em, err := flagencoder.NewEncodingManager("car", 4)
	require.NoError(t, err)
	im := NewImporter(em, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = im.ImportWays(ctx, []*osmway.ReaderWay{
		newWay(1, map[string]string{"highway": "primary"}, 1, 2),
	}, map[int64]geo.Coordinate{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseMissingFile(t *testing.T) {
	em, err := flagencoder.NewEncodingManager("car", 4)
	require.NoError(t, err)
	_, err = NewImporter(em, zap.NewNop()).Parse(context.Background(), "does-not-exist.osm.pbf")
	assert.Error(t, err)
}

var _ flagencoder.EdgeState = (*datastructure.EdgeCursor)(nil)
