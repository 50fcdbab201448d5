package osmway

import "sort"

// Set. immutable-by-convention set of tag keys or values.
type Set map[string]struct{}

func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s Set) Contains(v string) bool {
	_, ok := s[v]
	return ok
}

// Values. sorted members.
func (s Set) Values() []string {
	values := make([]string, 0, len(s))
	for v := range s {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

func (s Set) Disjoint(other Set) bool {
	for v := range s {
		if other.Contains(v) {
			return false
		}
	}
	return true
}
