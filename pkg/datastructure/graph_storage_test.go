package datastructure

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/lintang-b-s/flagencoder/pkg/encodedvalue"
	"github.com/lintang-b-s/flagencoder/pkg/flagencoder"
	"github.com/lintang-b-s/flagencoder/pkg/geo"
	"github.com/lintang-b-s/flagencoder/pkg/osmway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errVersion = errors.New("version mismatch")

type fixedVersion string

func (v fixedVersion) VersionString() string {
	return string(v)
}

func (v fixedVersion) CheckVersion(stored string) error {
	if stored != string(v) {
		return errVersion
	}
	return nil
}

func buildStorage() *EdgeFlagStorage {
	gs := NewEdgeFlagStorage()
	gs.AddEdge(10, []geo.Coordinate{
		geo.NewCoordinate(-7.75, 110.37),
		geo.NewCoordinate(-7.76, 110.38),
	}, 1500.5, encodedvalue.Flags(0b1011))
	gs.AddEdge(11, []geo.Coordinate{
		geo.NewCoordinate(-7.76, 110.38),
		geo.NewCoordinate(-7.77, 110.385),
		geo.NewCoordinate(-7.78, 110.39),
	}, 2400, encodedvalue.Flags(1<<40|7))
	return gs
}

func TestEdgeFlagStorage(t *testing.T) {
	gs := buildStorage()
	assert.Equal(t, 2, gs.NumberOfEdges())
	assert.Equal(t, 5, gs.NumberOfPoints())

	assert.Equal(t, encodedvalue.Flags(0b1011), gs.GetFlags(0))
	assert.Equal(t, 2400.0, gs.GetDistance(1))
	assert.Equal(t, int64(11), gs.GetOsmWayId(1))
	assert.Len(t, gs.GetPointsInbetween(1), 3)
	assert.Equal(t, geo.NewCoordinate(-7.78, 110.39), gs.GetPointsInbetween(1)[2])

	edge := gs.Edge(0)
	edge.SetFlags(edge.GetFlags() | 1<<5)
	assert.Equal(t, encodedvalue.Flags(0b101011), gs.GetFlags(0))
	assert.Equal(t, 1500.5, edge.GetDistance())

	bb := gs.GetBoundingBox()
	assert.Equal(t, -7.78, bb.GetMinLat())
	assert.Equal(t, 110.39, bb.GetMaxLon())
	assert.True(t, bb.Contains(geo.NewCoordinate(-7.77, 110.38)))
	assert.False(t, bb.Contains(geo.NewCoordinate(-7.70, 110.38)))

	assert.Panics(t, func() { gs.GetFlags(2) })
}

func TestWriteReadEdgeFlags(t *testing.T) {
	gs := buildStorage()
	filename := filepath.Join(t.TempDir(), "edges.bz2")
	version := fixedVersion("car|1,motorcycle|1")

	require.NoError(t, gs.WriteEdgeFlags(filename, version))

	read, err := ReadEdgeFlags(filename, version)
	require.NoError(t, err)
	require.Equal(t, gs.NumberOfEdges(), read.NumberOfEdges())
	for i := 0; i < gs.NumberOfEdges(); i++ {
		id := Index(i)
		assert.Equal(t, gs.GetFlags(id), read.GetFlags(id))
		assert.Equal(t, gs.GetDistance(id), read.GetDistance(id))
		assert.Equal(t, gs.GetOsmWayId(id), read.GetOsmWayId(id))
		assert.Equal(t, gs.GetPointsInbetween(id), read.GetPointsInbetween(id))
	}
	assert.Equal(t, gs.GetBoundingBox(), read.GetBoundingBox())

	_, err = ReadEdgeFlags(filename, fixedVersion("motorcycle|1"))
	assert.ErrorIs(t, err, errVersion)

	_, err = ReadEdgeFlags(filepath.Join(t.TempDir(), "missing.bz2"), version)
	assert.Error(t, err)
}

func TestReadEdgeFlagsRejectsOtherLayout(t *testing.T) {
	writer, err := flagencoder.NewEncodingManager("motorcycle|speedBits=4", 4)
	require.NoError(t, err)
	reader, err := flagencoder.NewEncodingManager("motorcycle", 4)
	require.NoError(t, err)

	way := osmway.NewReaderWay(1, map[string]string{"highway": "primary"})
	gs := NewEdgeFlagStorage()
	gs.AddEdge(1, []geo.Coordinate{
		geo.NewCoordinate(-7.75, 110.37),
		geo.NewCoordinate(-7.76, 110.38),
	}, 1500, writer.HandleWayTags(way, writer.AcceptWay(way), 0))

	filename := filepath.Join(t.TempDir(), "edges.bz2")
	require.NoError(t, gs.WriteEdgeFlags(filename, writer))

	_, err = ReadEdgeFlags(filename, reader)
	assert.ErrorIs(t, err, flagencoder.ErrIncompatibleVersion)

	read, err := ReadEdgeFlags(filename, writer)
	require.NoError(t, err)
	assert.Equal(t, gs.GetFlags(0), read.GetFlags(0))
}
