package filter

import "net/url"

// Record field names referenced by compiled predicates
const (
	FieldDate                = "Date"
	FieldCategory            = "Category"
	FieldArrest              = "Arrest"
	FieldDomestic            = "Domestic"
	FieldBusinessHour        = "BusinessHour"
	FieldWeekend             = "Weekend"
	FieldHoliday             = "Holiday"
	FieldDistrict            = "District"
	FieldBeat                = "Beat"
	FieldWard                = "Ward"
	FieldCommunityArea       = "Community Area"
	FieldHour                = "Hour"
	FieldDayOfWeek           = "dayOfWeek"
	FieldMonth               = "Month"
	FieldSeason              = "Season"
	FieldLocationDescription = "Location Description"
)

// CategoryLevels are the ranked category fields, primary first
var CategoryLevels = []string{"Category 1", "Category 2", "Category 3"}

const (
	dayStart = " 00:00:00"
	dayEnd   = " 23:59:59"
)

// CompileValues parses and compiles raw query parameters
func CompileValues(values url.Values) Predicate {
	return Compile(Parse(values))
}

// Compile turns a Spec into a Predicate. Constraint order is fixed so equal
// specs compile to equal predicates.
func Compile(s Spec) Predicate {
	var p Predicate

	if s.DateRange != nil {
		p.All = append(p.All, Constraint{
			Field: FieldDate,
			Op:    OpBetween,
			Lower: s.DateRange.Start.Format("2006-01-02") + dayStart,
			Upper: s.DateRange.End.Format("2006-01-02") + dayEnd,
		})
	}

	if len(s.Categories) > 0 {
		p.All = append(p.All, Constraint{Field: FieldCategory, Op: OpIn, Values: stringValues(s.Categories)})
	}

	flags := []struct {
		field string
		flag  Flag
	}{
		{FieldArrest, s.Arrest},
		{FieldDomestic, s.Domestic},
		{FieldBusinessHour, s.BusinessHour},
		{FieldWeekend, s.Weekend},
		{FieldHoliday, s.Holiday},
	}
	for _, f := range flags {
		switch f.flag {
		case FlagTrue:
			p.All = append(p.All, Constraint{Field: f.field, Op: OpEq, Value: 1})
		case FlagFalse:
			p.All = append(p.All, Constraint{Field: f.field, Op: OpEq, Value: 0})
		}
	}

	ints := []struct {
		field string
		value *int
	}{
		{FieldDistrict, s.District},
		{FieldBeat, s.Beat},
		{FieldWard, s.Ward},
		{FieldCommunityArea, s.CommunityArea},
		{FieldHour, s.Hour},
		{FieldDayOfWeek, s.DayOfWeek},
		{FieldMonth, s.Month},
	}
	for _, f := range ints {
		if f.value != nil {
			p.All = append(p.All, Constraint{Field: f.field, Op: OpEq, Value: *f.value})
		}
	}

	if s.Season != "" {
		p.All = append(p.All, Constraint{Field: FieldSeason, Op: OpEq, Value: s.Season})
	}

	if s.LocationDescription != nil {
		p.All = append(p.All, Constraint{Field: FieldLocationDescription, Op: OpEq, Value: *s.LocationDescription})
	}

	if len(s.TreeSelection) > 0 {
		selection := stringValues(s.TreeSelection)
		for _, level := range CategoryLevels {
			p.Any = append(p.Any, Constraint{Field: level, Op: OpIn, Values: selection})
		}
	}

	return p
}

func stringValues(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
