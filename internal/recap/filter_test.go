package recap

import (
	"testing"

	"github.com/sppku/sppku-backend/internal/model"
)

func filterRosterFixture() []model.Student {
	a := testStudent(1, "Ahmad Fauzi", 3, 250000, nil)
	a.NIS = "NIS0001"
	a.ClassName = "Tgk Ibnu"
	a.Category = model.CategoryMenetap

	b := testStudent(2, "Siti Aisyah", 5, 250000, nil)
	b.NIS = "NIS0002"
	b.ClassName = "Tgk Ahmad"
	b.Category = model.CategorySekolah

	c := testStudent(3, "Muhammad Ali", 0, 0, nil)
	c.NIS = "NIS0003"
	c.ClassName = "Tgk Ibnu"
	c.Category = model.CategorySekolah

	return []model.Student{a, b, c}
}

func TestFilterRoster(t *testing.T) {
	roster := filterRosterFixture()
	sched := model.DefaultFeeSchedule()

	tests := []struct {
		name    string
		filter  Filter
		wantIDs []int
	}{
		{
			name:    "identity filter returns everything in order",
			filter:  Filter{},
			wantIDs: []int{1, 2, 3},
		},
		{
			name:    "text match is case-insensitive",
			filter:  Filter{Query: "siti"},
			wantIDs: []int{2},
		},
		{
			name:    "class set restricts membership",
			filter:  Filter{Classes: []string{"Tgk Ibnu"}},
			wantIDs: []int{1, 3},
		},
		{
			name:    "empty class set means no restriction",
			filter:  Filter{Classes: nil, Category: model.CategorySekolah},
			wantIDs: []int{2, 3},
		},
		{
			name:    "predicates combine with AND not OR",
			filter:  Filter{Query: "ahmad", Category: model.CategoryMenetap},
			wantIDs: []int{1},
		},
		{
			name:    "matching text with non-matching category yields nothing",
			filter:  Filter{Query: "siti", Category: model.CategoryMenetap},
			wantIDs: []int{},
		},
		{
			name:    "nis is not searchable when the schedule disables it",
			filter:  Filter{Query: "nis0003"},
			wantIDs: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRoster(roster, tt.filter, sched)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("FilterRoster() returned %d students, want %d", len(got), len(tt.wantIDs))
			}
			for i, s := range got {
				if s.ID != tt.wantIDs[i] {
					t.Errorf("result[%d].ID = %d, want %d", i, s.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestFilterRoster_NISWithUseNIS(t *testing.T) {
	roster := filterRosterFixture()
	sched := model.DefaultFeeSchedule()
	sched.UseNIS = true

	got := FilterRoster(roster, Filter{Query: "nis0003"}, sched)
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("FilterRoster() with UseNIS = %v, want exactly student 3", got)
	}
}

func TestFilterRoster_DoesNotMutateInput(t *testing.T) {
	roster := filterRosterFixture()
	FilterRoster(roster, Filter{Query: "ahmad"}, model.DefaultFeeSchedule())

	if roster[0].ID != 1 || roster[1].ID != 2 || roster[2].ID != 3 {
		t.Error("FilterRoster() reordered the input roster")
	}
}
