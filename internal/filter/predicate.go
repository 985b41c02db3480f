package filter

// Op is a constraint operator
type Op string

const (
	OpEq      Op = "eq"
	OpIn      Op = "in"
	OpBetween Op = "between"
)

// Constraint restricts a single field
type Constraint struct {
	Field  string
	Op     Op
	Value  interface{}   // OpEq
	Values []interface{} // OpIn
	Lower  interface{}   // OpBetween, inclusive
	Upper  interface{}   // OpBetween, inclusive
}

// Predicate is a conjunction of constraints. When Any is non-empty a record
// must additionally satisfy at least one of its constraints.
type Predicate struct {
	All []Constraint
	Any []Constraint
}

// IsEmpty reports whether the predicate matches every record
func (p Predicate) IsEmpty() bool {
	return len(p.All) == 0 && len(p.Any) == 0
}

// Fields returns every field referenced by the predicate, in order of appearance
func (p Predicate) Fields() []string {
	seen := make(map[string]bool)
	var fields []string
	for _, group := range [][]Constraint{p.All, p.Any} {
		for _, c := range group {
			if !seen[c.Field] {
				seen[c.Field] = true
				fields = append(fields, c.Field)
			}
		}
	}
	return fields
}
