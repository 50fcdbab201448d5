package datastructure

import (
	"fmt"

	"github.com/lintang-b-s/flagencoder/pkg/encodedvalue"
	"github.com/lintang-b-s/flagencoder/pkg/geo"
)

type Index uint32

// EdgeInfo. one edge per accepted way. geometry lives in globalPoints[startPointsIndex:endPointsIndex].
type EdgeInfo struct {
	startPointsIndex Index
	endPointsIndex   Index
	osmWayId         int64
	distance         float64
	flags            encodedvalue.Flags
}

func NewEdgeInfo(osmWayId int64, startPointsIndex, endPointsIndex Index, distance float64,
	flags encodedvalue.Flags) EdgeInfo {
	return EdgeInfo{
		startPointsIndex: startPointsIndex,
		endPointsIndex:   endPointsIndex,
		osmWayId:         osmWayId,
		distance:         distance,
		flags:            flags,
	}
}

// EdgeFlagStorage. edge flags, lengths and geometries produced by the importer.
// writes are not synchronized.
type EdgeFlagStorage struct {
	globalPoints []geo.Coordinate
	edges        []EdgeInfo
	boundingBox  *BoundingBox
}

func NewEdgeFlagStorage() *EdgeFlagStorage {
	return &EdgeFlagStorage{
		globalPoints: make([]geo.Coordinate, 0),
		edges:        make([]EdgeInfo, 0),
		boundingBox:  newEmptyBoundingBox(),
	}
}

func NewEdgeFlagStorageWithSize(numberOfEdges, numberOfPoints int) *EdgeFlagStorage {
	return &EdgeFlagStorage{
		globalPoints: make([]geo.Coordinate, 0, numberOfPoints),
		edges:        make([]EdgeInfo, 0, numberOfEdges),
		boundingBox:  newEmptyBoundingBox(),
	}
}

// AddEdge. appends an edge with its geometry and returns its id.
func (gs *EdgeFlagStorage) AddEdge(osmWayId int64, points []geo.Coordinate, distance float64,
	flags encodedvalue.Flags) Index {
	start := Index(len(gs.globalPoints))
	gs.appendGlobalPoints(points)
	end := Index(len(gs.globalPoints))

	gs.edges = append(gs.edges, NewEdgeInfo(osmWayId, start, end, distance, flags))
	return Index(len(gs.edges) - 1)
}

func (gs *EdgeFlagStorage) appendGlobalPoints(points []geo.Coordinate) {
	for _, p := range points {
		gs.boundingBox.extend(p)
	}
	gs.globalPoints = append(gs.globalPoints, points...)
}

func (gs *EdgeFlagStorage) NumberOfEdges() int {
	return len(gs.edges)
}

func (gs *EdgeFlagStorage) NumberOfPoints() int {
	return len(gs.globalPoints)
}

func (gs *EdgeFlagStorage) GetBoundingBox() *BoundingBox {
	return gs.boundingBox
}

func (gs *EdgeFlagStorage) checkEdge(edgeID Index) {
	if int(edgeID) >= len(gs.edges) {
		panic(fmt.Sprintf("edge %d out of range, storage has %d edges", edgeID, len(gs.edges)))
	}
}

func (gs *EdgeFlagStorage) GetFlags(edgeID Index) encodedvalue.Flags {
	gs.checkEdge(edgeID)
	return gs.edges[edgeID].flags
}

func (gs *EdgeFlagStorage) SetFlags(edgeID Index, flags encodedvalue.Flags) {
	gs.checkEdge(edgeID)
	gs.edges[edgeID].flags = flags
}

// GetDistance. road length in meters.
func (gs *EdgeFlagStorage) GetDistance(edgeID Index) float64 {
	gs.checkEdge(edgeID)
	return gs.edges[edgeID].distance
}

func (gs *EdgeFlagStorage) GetOsmWayId(edgeID Index) int64 {
	gs.checkEdge(edgeID)
	return gs.edges[edgeID].osmWayId
}

// GetPointsInbetween. geometry of the edge from its first to its last node.
func (gs *EdgeFlagStorage) GetPointsInbetween(edgeID Index) []geo.Coordinate {
	gs.checkEdge(edgeID)
	e := gs.edges[edgeID]
	points := make([]geo.Coordinate, e.endPointsIndex-e.startPointsIndex)
	copy(points, gs.globalPoints[e.startPointsIndex:e.endPointsIndex])
	return points
}

// Edge. cursor over a single edge, used by the encoders' post processing.
func (gs *EdgeFlagStorage) Edge(edgeID Index) *EdgeCursor {
	gs.checkEdge(edgeID)
	return &EdgeCursor{storage: gs, edgeID: edgeID}
}

type EdgeCursor struct {
	storage *EdgeFlagStorage
	edgeID  Index
}

func (c *EdgeCursor) GetEdgeID() Index {
	return c.edgeID
}

func (c *EdgeCursor) GetFlags() encodedvalue.Flags {
	return c.storage.GetFlags(c.edgeID)
}

func (c *EdgeCursor) SetFlags(flags encodedvalue.Flags) {
	c.storage.SetFlags(c.edgeID, flags)
}

func (c *EdgeCursor) GetDistance() float64 {
	return c.storage.GetDistance(c.edgeID)
}
