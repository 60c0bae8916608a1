package recap

import (
	"strings"

	"github.com/sppku/sppku-backend/internal/model"
)

// Filter narrows a roster view. Zero values mean "no restriction".
type Filter struct {
	// Query matches case-insensitively against the student name, and
	// against the NIS when the schedule uses NIS.
	Query string
	// Classes restricts to the listed class names. Empty means all classes.
	Classes []string
	// Category restricts to one enrollment category when non-empty.
	Category model.Category
}

// Active reports whether any predicate is set.
func (f Filter) Active() bool {
	return f.Query != "" || len(f.Classes) > 0 || f.Category != ""
}

// FilterRoster returns the subsequence of roster matching all predicates,
// preserving the original relative order. The input is never mutated.
func FilterRoster(roster []model.Student, f Filter, sched *model.FeeSchedule) []model.Student {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]model.Student, 0, len(roster))
	for _, s := range roster {
		if len(f.Classes) > 0 && !containsClass(f.Classes, s.ClassName) {
			continue
		}
		if f.Category != "" && s.Category != f.Category {
			continue
		}
		if query != "" && !matchesQuery(&s, query, sched) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func containsClass(classes []string, name string) bool {
	for _, c := range classes {
		if c == name {
			return true
		}
	}
	return false
}

func matchesQuery(s *model.Student, query string, sched *model.FeeSchedule) bool {
	if strings.Contains(strings.ToLower(s.Name), query) {
		return true
	}
	// NIS is only searchable for institutions that use it.
	return sched.UseNIS && strings.Contains(strings.ToLower(s.NIS), query)
}
