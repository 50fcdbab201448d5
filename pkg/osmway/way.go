package osmway

import (
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/osm"
)

const (
	ESTIMATED_DISTANCE = "estimated_distance"
)

// TagReader. read-only view of a way's tags as consumed by the flag encoders.
type TagReader interface {
	Tag(key string) string
	HasTag(key string) bool
	HasTagValue(key string, values ...string) bool
	HasTagIn(key string, values Set) bool
	FirstPriorityTag(keys []string) string
	FloatTag(key string) (float64, bool)
}

// ReaderWay. tagged osm way with its node references.
type ReaderWay struct {
	id    int64
	tags  map[string]string
	nodes []int64
}

func NewReaderWay(id int64, tags map[string]string) *ReaderWay {
	copied := make(map[string]string, len(tags))
	for k, v := range tags {
		copied[k] = v
	}
	return &ReaderWay{id: id, tags: copied}
}

// FromOSM. converts a decoded pbf way.
func FromOSM(way *osm.Way) *ReaderWay {
	w := &ReaderWay{
		id:    int64(way.ID),
		tags:  way.Tags.Map(),
		nodes: make([]int64, 0, len(way.Nodes)),
	}
	for _, node := range way.Nodes {
		w.nodes = append(w.nodes, int64(node.ID))
	}
	return w
}

func (w *ReaderWay) ID() int64 {
	return w.id
}

func (w *ReaderWay) Nodes() []int64 {
	return w.nodes
}

func (w *ReaderWay) SetNodes(nodes []int64) {
	w.nodes = nodes
}

// Tags. copy of the tag map.
func (w *ReaderWay) Tags() map[string]string {
	copied := make(map[string]string, len(w.tags))
	for k, v := range w.tags {
		copied[k] = v
	}
	return copied
}

func (w *ReaderWay) SetTag(key, value string) {
	w.tags[key] = value
}

func (w *ReaderWay) Tag(key string) string {
	return w.tags[key]
}

func (w *ReaderWay) HasTag(key string) bool {
	_, ok := w.tags[key]
	return ok
}

func (w *ReaderWay) HasTagValue(key string, values ...string) bool {
	v, ok := w.tags[key]
	if !ok {
		return false
	}
	for _, want := range values {
		if v == want {
			return true
		}
	}
	return false
}

func (w *ReaderWay) HasTagIn(key string, values Set) bool {
	v, ok := w.tags[key]
	if !ok {
		return false
	}
	return values.Contains(v)
}

// FirstPriorityTag. value of the first key present, "" when none is.
func (w *ReaderWay) FirstPriorityTag(keys []string) string {
	for _, key := range keys {
		if v, ok := w.tags[key]; ok && v != "" {
			return v
		}
	}
	return ""
}

func (w *ReaderWay) FloatTag(key string) (float64, bool) {
	v, ok := w.tags[key]
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
