package pkg

const (
	// speeds are stored in km/h
	KM_MILE = 1.609344
	KM_KNOT = 1.852

	NERF_MAXSPEED_OSM = 0.9

	BAD_SURFACE_MAX_SPEED = 30.0

	// curvature is only relevant above this speed
	CURVATURE_MIN_SPEED = 51.0
	CURVATURE_EPSILON   = 0.01
	CURVATURE_MAX_RAW   = 10

	// ferries without a duration tag use the middle reference speed
	FERRY_LONG_TRIP_HOURS  = 1.0
	FERRY_DURATION_PENALTY = 1.4
)

const (
	DEFAULT_SPEED_BITS    = 5
	DEFAULT_SPEED_FACTOR  = 5.0
	DEFAULT_MAX_TURNCOSTS = 0
	DEFAULT_BLOCK_FORDS   = true
)

// PriorityCode. ordinal route desirability, independent of speed.
type PriorityCode int

const (
	WORST PriorityCode = iota
	AVOID_AT_ALL_COSTS
	REACH_DEST
	AVOID_IF_POSSIBLE
	UNCHANGED
	PREFER
	VERY_NICE
	BEST
)

func (p PriorityCode) Value() int {
	return int(p)
}

func (p PriorityCode) String() string {
	switch p {
	case WORST:
		return "worst"
	case AVOID_AT_ALL_COSTS:
		return "avoid_at_all_costs"
	case REACH_DEST:
		return "reach_dest"
	case AVOID_IF_POSSIBLE:
		return "avoid_if_possible"
	case UNCHANGED:
		return "unchanged"
	case PREFER:
		return "prefer"
	case VERY_NICE:
		return "very_nice"
	case BEST:
		return "best"
	default:
		return "unknown"
	}
}

// feature names understood by Supports and the named-key accessor
const (
	FEATURE_FASTEST    = "fastest"
	FEATURE_PRIORITY   = "priority"
	FEATURE_CURVATURE  = "curvature"
	FEATURE_TURN_COSTS = "turncosts"
)

type OsmHighwayType uint8

// enum buat osm highway buat routing: https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
const (
	MOTORWAY       OsmHighwayType = 0
	TRUNK          OsmHighwayType = 1
	PRIMARY        OsmHighwayType = 2
	SECONDARY      OsmHighwayType = 3
	TERTIARY       OsmHighwayType = 4
	RESIDENTIAL    OsmHighwayType = 5
	SERVICE        OsmHighwayType = 6
	UNCLASSIFIED   OsmHighwayType = 7
	MOTORWAY_LINK  OsmHighwayType = 8
	TRUNK_LINK     OsmHighwayType = 9
	PRIMARY_LINK   OsmHighwayType = 10
	SECONDARY_LINK OsmHighwayType = 11
	TERTIARY_LINK  OsmHighwayType = 12
	LIVING_STREET  OsmHighwayType = 13
	ROAD           OsmHighwayType = 14
	TRACK          OsmHighwayType = 15
	MOTORROAD      OsmHighwayType = 16
	FORD           OsmHighwayType = 17
	UNKNOWN        OsmHighwayType = 18
)

func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "motorway":
		return MOTORWAY
	case "trunk":
		return TRUNK
	case "primary":
		return PRIMARY
	case "secondary":
		return SECONDARY
	case "tertiary":
		return TERTIARY
	case "unclassified":
		return UNCLASSIFIED
	case "residential":
		return RESIDENTIAL
	case "service":
		return SERVICE
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk_link":
		return TRUNK_LINK
	case "primary_link":
		return PRIMARY_LINK
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary_link":
		return TERTIARY_LINK
	case "living_street":
		return LIVING_STREET
	case "road":
		return ROAD
	case "track":
		return TRACK
	case "motorroad":
		return MOTORROAD
	case "ford":
		return FORD
	default:
		return UNKNOWN
	}
}

func (h OsmHighwayType) String() string {
	switch h {
	case MOTORWAY:
		return "motorway"
	case TRUNK:
		return "trunk"
	case PRIMARY:
		return "primary"
	case SECONDARY:
		return "secondary"
	case TERTIARY:
		return "tertiary"
	case UNCLASSIFIED:
		return "unclassified"
	case RESIDENTIAL:
		return "residential"
	case SERVICE:
		return "service"
	case MOTORWAY_LINK:
		return "motorway_link"
	case TRUNK_LINK:
		return "trunk_link"
	case PRIMARY_LINK:
		return "primary_link"
	case SECONDARY_LINK:
		return "secondary_link"
	case TERTIARY_LINK:
		return "tertiary_link"
	case LIVING_STREET:
		return "living_street"
	case ROAD:
		return "road"
	case TRACK:
		return "track"
	case MOTORROAD:
		return "motorroad"
	case FORD:
		return "ford"
	default:
		return ""
	}
}
