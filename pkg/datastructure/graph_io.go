package datastructure

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/flagencoder/pkg/encodedvalue"
	"github.com/lintang-b-s/flagencoder/pkg/geo"
	"github.com/lintang-b-s/flagencoder/pkg/util"
)

// VersionChecker. rejects flags written by a different encoder layout.
type VersionChecker interface {
	VersionString() string
	CheckVersion(stored string) error
}

// WriteEdgeFlags. bzip2 compressed text: the encoder version, the counts, the points and the edges.
func (gs *EdgeFlagStorage) WriteEdgeFlags(filename string, version VersionChecker) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	w := bufio.NewWriter(bz)

	fmt.Fprintf(w, "%s\n", strconv.Quote(version.VersionString()))
	fmt.Fprintf(w, "%d %d\n", len(gs.edges), len(gs.globalPoints))

	for _, p := range gs.globalPoints {
		latF := strconv.FormatFloat(p.Lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(p.Lon, 'f', -1, 64)
		fmt.Fprintf(w, "%s %s\n", latF, lonF)
	}

	for _, e := range gs.edges {
		distF := strconv.FormatFloat(e.distance, 'f', -1, 64)
		fmt.Fprintf(w, "%d %d %d %s %d\n", e.startPointsIndex, e.endPointsIndex, e.osmWayId, distF,
			e.flags.Uint64())
	}

	return w.Flush()
}

func fields(s string) []string {
	return strings.Fields(s)
}

func ParseIndex(s string) (Index, error) {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if u > math.MaxUint32 {
		return 0, fmt.Errorf("value %s overflows uint32", s)
	}
	return Index(u), nil
}

// ReadEdgeFlags. reads a file written by WriteEdgeFlags, failing before the body when the
// stored version does not match.
func ReadEdgeFlags(filename string, version VersionChecker) (*EdgeFlagStorage, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(bz)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, err
	}
	stored, err := strconv.Unquote(line)
	if err != nil {
		return nil, fmt.Errorf("invalid version line %q: %w", line, err)
	}
	if err := version.CheckVersion(stored); err != nil {
		return nil, err
	}

	line, err = util.ReadLine(br)
	if err != nil {
		return nil, err
	}
	tokens := fields(line)
	if len(tokens) != 2 {
		return nil, fmt.Errorf("expected 2 fields, got %d", len(tokens))
	}
	numEdges, err := ParseIndex(tokens[0])
	if err != nil {
		return nil, err
	}
	numPoints, err := ParseIndex(tokens[1])
	if err != nil {
		return nil, err
	}

	gs := NewEdgeFlagStorageWithSize(int(numEdges), int(numPoints))

	points := make([]geo.Coordinate, 0, numPoints)
	for i := 0; i < int(numPoints); i++ {
		pointLine, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		p, err := parsePoint(pointLine)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	gs.appendGlobalPoints(points)

	for i := 0; i < int(numEdges); i++ {
		edgeLine, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		e, err := parseEdge(edgeLine, numPoints)
		if err != nil {
			return nil, err
		}
		gs.edges = append(gs.edges, e)
	}

	return gs, nil
}

func parsePoint(line string) (geo.Coordinate, error) {
	tokens := fields(line)
	if len(tokens) != 2 {
		return geo.Coordinate{}, fmt.Errorf("expected 2 fields, got %d", len(tokens))
	}
	lat, err := strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		return geo.Coordinate{}, err
	}
	lon, err := strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return geo.Coordinate{}, err
	}
	return geo.NewCoordinate(lat, lon), nil
}

func parseEdge(line string, numPoints Index) (EdgeInfo, error) {
	tokens := fields(line)
	if len(tokens) != 5 {
		return EdgeInfo{}, fmt.Errorf("expected 5 fields, got %d", len(tokens))
	}
	start, err := ParseIndex(tokens[0])
	if err != nil {
		return EdgeInfo{}, err
	}
	end, err := ParseIndex(tokens[1])
	if err != nil {
		return EdgeInfo{}, err
	}
	if start > end || end > numPoints {
		return EdgeInfo{}, fmt.Errorf("edge points [%d, %d) outside %d points", start, end, numPoints)
	}
	wayId, err := strconv.ParseInt(tokens[2], 10, 64)
	if err != nil {
		return EdgeInfo{}, err
	}
	dist, err := strconv.ParseFloat(tokens[3], 64)
	if err != nil {
		return EdgeInfo{}, err
	}
	flags, err := strconv.ParseUint(tokens[4], 10, 64)
	if err != nil {
		return EdgeInfo{}, err
	}
	return NewEdgeInfo(wayId, start, end, dist, encodedvalue.Flags(flags)), nil
}
