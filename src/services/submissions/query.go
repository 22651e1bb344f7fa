package submissions

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"Bizonii-Backend/src/models"
)

// SearchFieldLimit caps how many leading fields of a submission the keyword
// filter inspects.
const SearchFieldLimit = 5

type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// ParseSortOrder maps the "order" query parameter; empty means ascending.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(s)) {
	case "", Ascending:
		return Ascending, nil
	case Descending:
		return Descending, nil
	}
	return "", fmt.Errorf("%w: order must be asc or desc, got %q", models.ErrInvalidInput, s)
}

// TimeWindow constrains calendar components of a submission's creation time.
// A nil component is unconstrained.
type TimeWindow struct {
	Hour  *int
	Day   *int
	Month *int
	Year  *int
}

// IsZero reports whether no component is constrained.
func (w TimeWindow) IsZero() bool {
	return w.Hour == nil && w.Day == nil && w.Month == nil && w.Year == nil
}

func (w TimeWindow) matches(t time.Time) bool {
	if w.Hour != nil && t.Hour() != *w.Hour {
		return false
	}
	if w.Day != nil && t.Day() != *w.Day {
		return false
	}
	if w.Month != nil && int(t.Month()) != *w.Month {
		return false
	}
	if w.Year != nil && t.Year() != *w.Year {
		return false
	}
	return true
}

// Query describes a listing: sort, then keyword filter, then time window.
// A nil or empty Search disables keyword filtering; a nil Window disables the
// time filter. Location is the calendar used for the window and defaults to
// time.Local.
type Query struct {
	Order    SortOrder
	Search   *string
	Window   *TimeWindow
	Location *time.Location
}

// Apply runs the query over submissions without modifying the input.
func (q Query) Apply(submissions []models.Submission) []models.Submission {
	out := slices.Clone(submissions)
	if out == nil {
		out = []models.Submission{}
	}

	desc := q.Order == Descending
	slices.SortStableFunc(out, func(a, b models.Submission) int {
		if desc {
			return cmp.Compare(b.SubmissionExpirationTime, a.SubmissionExpirationTime)
		}
		return cmp.Compare(a.SubmissionExpirationTime, b.SubmissionExpirationTime)
	})

	if q.Search != nil && *q.Search != "" {
		needle := *q.Search
		out = slices.DeleteFunc(out, func(s models.Submission) bool {
			return !containsInLeadingFields(s.CompletedDynamicFields, needle)
		})
	}

	if q.Window != nil && !q.Window.IsZero() {
		loc := q.Location
		if loc == nil {
			loc = time.Local
		}
		w := *q.Window
		out = slices.DeleteFunc(out, func(s models.Submission) bool {
			return !w.matches(time.Unix(s.SubmissionCreationTime, 0).In(loc))
		})
	}
	return out
}

func containsInLeadingFields(fields models.FieldValues, needle string) bool {
	for i, fv := range fields {
		if i >= SearchFieldLimit {
			break
		}
		if strings.Contains(models.StringifyValue(fv.Value), needle) {
			return true
		}
	}
	return false
}
