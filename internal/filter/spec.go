// Package filter turns loosely typed request parameters into a normalized
// Spec and compiles it into a storage-agnostic Predicate.
package filter

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Flag is a tri-state boolean filter
type Flag int

const (
	FlagUnset Flag = iota
	FlagTrue
	FlagFalse
)

// Seasons lists the known seasons in display order
var Seasons = []string{"Spring", "Summer", "Autumn", "Winter"}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// DateRange is an inclusive range of calendar days
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Spec is the normalized form of user supplied filter parameters.
// Every dimension is optional; an unset dimension never constrains.
type Spec struct {
	DateRange           *DateRange
	Categories          []string
	Arrest              Flag
	Domestic            Flag
	BusinessHour        Flag
	Weekend             Flag
	Holiday             Flag
	District            *int
	Beat                *int
	Ward                *int
	CommunityArea       *int
	Hour                *int
	DayOfWeek           *int
	Month               *int
	Season              string
	LocationDescription *string
	TreeSelection       []string
	Bins                *int
}

// Parse builds a Spec from query parameters. Malformed values are dropped.
func Parse(values url.Values) Spec {
	var s Spec

	start, okStart := parseDate(values.Get("start"))
	end, okEnd := parseDate(values.Get("end"))
	if okStart && okEnd {
		s.DateRange = &DateRange{Start: start, End: end}
	}

	for _, c := range values["categories"] {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		s.Categories = append(s.Categories, strings.ToUpper(c))
	}

	s.Arrest = parseFlag(values, "arrest")
	s.Domestic = parseFlag(values, "domestic")
	s.BusinessHour = parseFlag(values, "businessHour")
	s.Weekend = parseFlag(values, "weekend")
	s.Holiday = parseFlag(values, "holiday")

	s.District = parseInt(values, "district")
	s.Beat = parseInt(values, "beat")
	s.Ward = parseInt(values, "ward")
	s.CommunityArea = parseInt(values, "communityArea")
	s.Hour = parseInt(values, "hour")
	s.DayOfWeek = parseInt(values, "dayOfWeek")
	s.Month = parseInt(values, "month")

	if has(values, "season") {
		s.Season = normalizeSeason(values.Get("season"))
	}

	if has(values, "locationDescription") {
		loc := values.Get("locationDescription")
		s.LocationDescription = &loc
	}

	for _, c := range values["crimes"] {
		if c != "" {
			s.TreeSelection = append(s.TreeSelection, c)
		}
	}

	if has(values, "bins") {
		n, err := strconv.Atoi(strings.TrimSpace(values.Get("bins")))
		if err != nil {
			n = 0
		}
		s.Bins = &n
	}

	return s
}

// BinCount returns the requested histogram bin count or def when unset
func (s Spec) BinCount(def int) int {
	if s.Bins == nil {
		return def
	}
	return *s.Bins
}

func has(values url.Values, key string) bool {
	v, ok := values[key]
	return ok && len(v) > 0
}

// parseFlag maps presence of key to a Flag: "true" or "1" require true,
// any other value requires false.
func parseFlag(values url.Values, key string) Flag {
	if !has(values, key) {
		return FlagUnset
	}
	switch strings.ToLower(strings.TrimSpace(values.Get(key))) {
	case "true", "1":
		return FlagTrue
	default:
		return FlagFalse
	}
}

func parseInt(values url.Values, key string) *int {
	if !has(values, key) {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(values.Get(key)))
	if err != nil {
		return nil
	}
	return &n
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func normalizeSeason(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	return strings.ToUpper(raw[:1]) + strings.ToLower(raw[1:])
}
