package recap

import (
	"testing"

	"github.com/sppku/sppku-backend/internal/model"
)

func TestFeeColumns(t *testing.T) {
	tests := []struct {
		name     string
		sched    model.FeeSchedule
		wantKeys []model.FeeKind
	}{
		{
			name: "two stages one optional",
			sched: model.FeeSchedule{
				PembangunanStages: 2,
				EnabledFees:       map[model.FeeKind]bool{model.FeeCatering: true},
			},
			wantKeys: []model.FeeKind{model.FeePembangunan1, model.FeePembangunan2, model.FeeCatering},
		},
		{
			name: "three stages never produce a fourth",
			sched: model.FeeSchedule{
				PembangunanStages: 3,
				EnabledFees:       map[model.FeeKind]bool{},
			},
			wantKeys: []model.FeeKind{model.FeePembangunan1, model.FeePembangunan2, model.FeePembangunan3},
		},
		{
			name: "optional fees keep canonical order",
			sched: model.FeeSchedule{
				PembangunanStages: 1,
				EnabledFees: map[model.FeeKind]bool{
					model.FeeLainnya:  true,
					model.FeeCatering: true,
					model.FeeBuku:     true,
				},
			},
			wantKeys: []model.FeeKind{model.FeePembangunan1, model.FeeCatering, model.FeeBuku, model.FeeLainnya},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := FeeColumns(&tt.sched)
			if len(cols) != len(tt.wantKeys) {
				t.Fatalf("FeeColumns() returned %d columns, want %d", len(cols), len(tt.wantKeys))
			}
			for i, col := range cols {
				if col.Key != tt.wantKeys[i] {
					t.Errorf("columns[%d].Key = %s, want %s", i, col.Key, tt.wantKeys[i])
				}
				if col.Accessor == nil {
					t.Errorf("columns[%d].Accessor is nil", i)
				}
			}
		})
	}
}

// The worked example: three students, one installment stage, catering enabled.
func TestBuildGrid(t *testing.T) {
	sched := &model.FeeSchedule{
		PembangunanStages: 1,
		EnabledFees:       map[model.FeeKind]bool{model.FeeCatering: true},
	}
	roster := []model.Student{
		testStudent(1, "Santri A", 12, 250000, map[model.FeeKind]int64{
			model.FeePembangunan1: 500000,
			model.FeeCatering:     150000,
		}),
		testStudent(2, "Santri B", 6, 250000, map[model.FeeKind]int64{
			model.FeePembangunan1: 0,
			model.FeeCatering:     0,
		}),
		testStudent(3, "Santri C", 0, 0, nil),
	}

	grid, err := BuildGrid(roster, sched)
	if err != nil {
		t.Fatalf("BuildGrid() error = %v", err)
	}

	if len(grid.Columns) != 2 {
		t.Fatalf("grid has %d fee columns, want 2 (1 installment + catering)", len(grid.Columns))
	}
	if len(grid.Rows) != 3 {
		t.Fatalf("grid has %d rows, want 3", len(grid.Rows))
	}

	rowA := grid.Rows[0]
	if rowA.Totals.TotalFees != 650000 {
		t.Errorf("student A TotalFees = %d, want 650000", rowA.Totals.TotalFees)
	}
	if len(rowA.Months) != MonthCount {
		t.Errorf("student A has %d month cells, want %d", len(rowA.Months), MonthCount)
	}
	if rowA.FeeCells[0] != 500000 || rowA.FeeCells[1] != 150000 {
		t.Errorf("student A fee cells = %v, want [500000 150000]", rowA.FeeCells)
	}

	jan := grid.Footer.Months[0]
	if jan.PaidCount != 2 || jan.UnpaidCount != 1 {
		t.Errorf("footer January = {paid:%d, unpaid:%d}, want {paid:2, unpaid:1}", jan.PaidCount, jan.UnpaidCount)
	}
	if jan.AmountSum != 500000 {
		t.Errorf("footer January amount = %d, want 500000 (A + B recorded amounts)", jan.AmountSum)
	}

	if grid.Footer.GrandTotalSPP != 12*250000+6*250000 {
		t.Errorf("grand total SPP = %d, want %d", grid.Footer.GrandTotalSPP, 12*250000+6*250000)
	}
	if grid.Footer.GrandTotalFees != 650000 {
		t.Errorf("grand total fees = %d, want 650000", grid.Footer.GrandTotalFees)
	}
}

func TestBuildGrid_NISOnlyWhenConfigured(t *testing.T) {
	s := testStudent(1, "Santri A", 0, 0, nil)
	s.NIS = "NIS0001"

	sched := model.DefaultFeeSchedule()
	grid, err := BuildGrid([]model.Student{s}, sched)
	if err != nil {
		t.Fatalf("BuildGrid() error = %v", err)
	}
	if grid.Rows[0].NIS != "" {
		t.Error("row exposes NIS although the schedule does not use it")
	}

	sched.UseNIS = true
	grid, err = BuildGrid([]model.Student{s}, sched)
	if err != nil {
		t.Fatalf("BuildGrid() error = %v", err)
	}
	if grid.Rows[0].NIS != "NIS0001" {
		t.Errorf("row NIS = %q, want NIS0001", grid.Rows[0].NIS)
	}
}

func TestBuildGrid_PropagatesIntegrityError(t *testing.T) {
	corrupt := testStudent(1, "Santri A", 0, 0, nil)
	corrupt.MonthlyPayments = corrupt.MonthlyPayments[:10]

	if _, err := BuildGrid([]model.Student{corrupt}, model.DefaultFeeSchedule()); err == nil {
		t.Fatal("BuildGrid() accepted a 10-entry payment vector")
	}
}
