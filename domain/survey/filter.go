package survey

import (
	"fmt"
	"strings"
)

// Filter is the active gender selection. The zero value selects everything.
type Filter int

const (
	FilterNone Filter = iota
	FilterWomen
	FilterMen
)

// Filters lists the selectable filters in button order.
var Filters = []Filter{FilterWomen, FilterMen}

// ParseFilter reads the query value of a filter trigger.
// "" and "all" clear the filter; anything unrecognised is ErrUnknownFilter.
func ParseFilter(value string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all", "none":
		return FilterNone, nil
	case "women", "woman":
		return FilterWomen, nil
	case "men", "man":
		return FilterMen, nil
	default:
		return FilterNone, fmt.Errorf("%w: %q", ErrUnknownFilter, value)
	}
}

// String returns the query value of the filter ("" for none)
func (f Filter) String() string {
	switch f {
	case FilterWomen:
		return "women"
	case FilterMen:
		return "men"
	default:
		return ""
	}
}

// Label is the trigger caption
func (f Filter) Label() string {
	switch f {
	case FilterWomen:
		return "Women"
	case FilterMen:
		return "Men"
	default:
		return "All"
	}
}

// Active reports whether the filter restricts the table
func (f Filter) Active() bool {
	return f == FilterWomen || f == FilterMen
}

// Gender returns the gender selected by the filter
func (f Filter) Gender() (Gender, bool) {
	switch f {
	case FilterWomen:
		return GenderWoman, true
	case FilterMen:
		return GenderMan, true
	default:
		return "", false
	}
}

// Apply returns the filter-restricted view, or t itself when no filter is active
func (f Filter) Apply(t *Table) *Table {
	g, ok := f.Gender()
	if !ok {
		return t
	}
	return t.ByGender(g)
}
