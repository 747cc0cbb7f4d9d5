package project

import "strings"

// Filter selects a subset of projects for display.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterOngoing   Filter = "ongoing"
	FilterCompleted Filter = "completed"
	FilterUnpaid    Filter = "unpaid"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterOngoing, FilterCompleted, FilterUnpaid}

// ParseFilter maps a user-supplied name to a Filter.
func ParseFilter(name string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(name))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterOngoing:
		return FilterOngoing, nil
	case FilterCompleted:
		return FilterCompleted, nil
	case FilterUnpaid:
		return FilterUnpaid, nil
	}
	return FilterAll, ErrInvalidInput
}

// Title is the human-readable filter name.
func (f Filter) Title() string {
	switch f {
	case FilterOngoing:
		return "Ongoing"
	case FilterCompleted:
		return "Completed"
	case FilterUnpaid:
		return "Unpaid"
	default:
		return "All Projects"
	}
}

// Matches reports whether p belongs to the filter.
func (f Filter) Matches(p Project) bool {
	switch f {
	case FilterOngoing:
		return !p.IsCompleted
	case FilterCompleted:
		return p.IsCompleted
	case FilterUnpaid:
		return !p.IsPaid
	default:
		return true
	}
}

// Apply returns the projects matching the filter, preserving order.
func (f Filter) Apply(projects []Project) []Project {
	if f == FilterAll || f == "" {
		return projects
	}
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Count returns the number of projects matching the filter.
func (f Filter) Count(projects []Project) int {
	n := 0
	for _, p := range projects {
		if f.Matches(p) {
			n++
		}
	}
	return n
}

// MatchesQuery reports whether the project matches a free-text search on
// client name or phone number, case-insensitively.
func MatchesQuery(p Project, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.ClientName), q) ||
		strings.Contains(strings.ToLower(p.PhoneNumber), q)
}

// Search returns the projects matching the query, preserving order.
func Search(projects []Project, query string) []Project {
	if query == "" {
		return projects
	}
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if MatchesQuery(p, query) {
			out = append(out, p)
		}
	}
	return out
}
