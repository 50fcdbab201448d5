package conditional

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var ErrUnsupportedCondition = errors.New("unsupported condition")

// Condition. a time restriction attached to a conditional tag value.
type Condition interface {
	Matches(t time.Time) bool
}

type anyOf []Condition

func (c anyOf) Matches(t time.Time) bool {
	for _, cond := range c {
		if cond.Matches(t) {
			return true
		}
	}
	return false
}

type allOf []Condition

func (c allOf) Matches(t time.Time) bool {
	for _, cond := range c {
		if !cond.Matches(t) {
			return false
		}
	}
	return len(c) > 0
}

type weekdayRange struct {
	from, to time.Weekday
}

func (r weekdayRange) Matches(t time.Time) bool {
	d := t.Weekday()
	if r.from <= r.to {
		return d >= r.from && d <= r.to
	}
	// Sa-Mo wraps over the week end
	return d >= r.from || d <= r.to
}

// minutes since midnight, to may be smaller than from when the range wraps midnight
type timeRange struct {
	from, to int
}

func (r timeRange) Matches(t time.Time) bool {
	m := t.Hour()*60 + t.Minute()
	if r.from <= r.to {
		return m >= r.from && m < r.to
	}
	return m >= r.from || m < r.to
}

type monthRange struct {
	from, to time.Month
}

func (r monthRange) Matches(t time.Time) bool {
	m := t.Month()
	if r.from <= r.to {
		return m >= r.from && m <= r.to
	}
	return m >= r.from || m <= r.to
}

// dateRange. both ends inclusive, compared by calendar day.
type dateRange struct {
	from, to time.Time
}

func (r dateRange) Matches(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(r.from) && !day.After(r.to)
}

var weekdays = map[string]time.Weekday{
	"Mo": time.Monday, "Tu": time.Tuesday, "We": time.Wednesday, "Th": time.Thursday,
	"Fr": time.Friday, "Sa": time.Saturday, "Su": time.Sunday,
}

var months = map[string]time.Month{
	"Jan": time.January, "Feb": time.February, "Mar": time.March, "Apr": time.April,
	"May": time.May, "Jun": time.June, "Jul": time.July, "Aug": time.August,
	"Sep": time.September, "Oct": time.October, "Nov": time.November, "Dec": time.December,
}

var fullDateRange = regexp.MustCompile(`^(\d{4})\s+([A-Z][a-z]{2})\s+(\d{1,2})\s*-\s*(\d{4})\s+([A-Z][a-z]{2})\s+(\d{1,2})$`)

// ParseCondition. parses the part after '@', e.g. "(Mo-Fr 07:00-19:00)", "Nov-Mar", "2015 Jan 01-2015 Dec 31".
func ParseCondition(s string) (Condition, error) {
	s = stripParens(strings.TrimSpace(s))
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrUnsupportedCondition)
	}

	if rules := splitTopLevel(s, ';'); len(rules) > 1 {
		alternatives := make(anyOf, 0, len(rules))
		for _, rule := range rules {
			cond, err := ParseCondition(rule)
			if err != nil {
				return nil, err
			}
			alternatives = append(alternatives, cond)
		}
		return alternatives, nil
	}

	if parts := strings.Split(s, " AND "); len(parts) > 1 {
		all := make(allOf, 0, len(parts))
		for _, part := range parts {
			cond, err := ParseCondition(part)
			if err != nil {
				return nil, err
			}
			all = append(all, cond)
		}
		return all, nil
	}

	if m := fullDateRange.FindStringSubmatch(s); m != nil {
		return parseDateRange(m)
	}

	all := make(allOf, 0, 2)
	for _, token := range strings.Fields(s) {
		cond, err := parseToken(token)
		if err != nil {
			return nil, err
		}
		all = append(all, cond)
	}
	if len(all) == 1 {
		return all[0], nil
	}
	return all, nil
}

func parseDateRange(m []string) (Condition, error) {
	from, err := parseDate(m[1], m[2], m[3])
	if err != nil {
		return nil, err
	}
	to, err := parseDate(m[4], m[5], m[6])
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: date range ends before it starts", ErrUnsupportedCondition)
	}
	return dateRange{from: from, to: to}, nil
}

func parseDate(year, month, day string) (time.Time, error) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: year %q", ErrUnsupportedCondition, year)
	}
	mo, ok := months[month]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: month %q", ErrUnsupportedCondition, month)
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		return time.Time{}, fmt.Errorf("%w: day %q", ErrUnsupportedCondition, day)
	}
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC), nil
}

// parseToken. one space separated selector: weekday list, time list or month range.
func parseToken(token string) (Condition, error) {
	items := strings.Split(token, ",")
	alternatives := make(anyOf, 0, len(items))
	for _, item := range items {
		cond, err := parseItem(item)
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, cond)
	}
	if len(alternatives) == 1 {
		return alternatives[0], nil
	}
	return alternatives, nil
}

func parseItem(item string) (Condition, error) {
	from, to, isRange := strings.Cut(item, "-")
	if !isRange {
		to = from
	}

	if d1, ok := weekdays[from]; ok {
		d2, ok := weekdays[to]
		if !ok {
			return nil, fmt.Errorf("%w: weekday %q", ErrUnsupportedCondition, to)
		}
		return weekdayRange{from: d1, to: d2}, nil
	}
	if m1, ok := months[from]; ok {
		m2, ok := months[to]
		if !ok {
			return nil, fmt.Errorf("%w: month %q", ErrUnsupportedCondition, to)
		}
		return monthRange{from: m1, to: m2}, nil
	}
	if isRange {
		t1, err := parseClock(from)
		if err != nil {
			return nil, err
		}
		t2, err := parseClock(to)
		if err != nil {
			return nil, err
		}
		return timeRange{from: t1, to: t2}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedCondition, item)
}

func parseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("%w: time %q", ErrUnsupportedCondition, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 24 {
		return 0, fmt.Errorf("%w: hour %q", ErrUnsupportedCondition, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: minute %q", ErrUnsupportedCondition, s)
	}
	return h*60 + m, nil
}

// splitTopLevel. splits on sep outside of parentheses.
func splitTopLevel(s string, sep rune) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))

	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// stripParens. removes parentheses that enclose the whole string.
func stripParens(s string) string {
	for len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		depth := 0
		enclosing := true
		for i, r := range s {
			if r == '(' {
				depth++
			} else if r == ')' {
				depth--
				if depth == 0 && i != len(s)-1 {
					enclosing = false
					break
				}
			}
		}
		if !enclosing {
			return s
		}
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
