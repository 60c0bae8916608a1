package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/sppku/sppku-backend/internal/model"
)

func testSchedule() *model.FeeSchedule {
	return &model.FeeSchedule{
		UseNIS:            true,
		PembangunanStages: 2,
		EnabledFees: map[model.FeeKind]bool{
			model.FeeCatering: true,
			model.FeeSeragam:  false,
			model.FeeBuku:     false,
			model.FeeLainnya:  true,
		},
	}
}

func TestParseRosterCSV(t *testing.T) {
	sched := testSchedule()
	csvData := strings.Join([]string{
		"name,nis,category,class,monthlyFee,pembangunan1Fee,pembangunan2Fee,cateringFee",
		"Ahmad Fauzi,2024001,Menetap,Kelas 1,250000,500000,0,150000",
		"Siti Aisyah,2024002,Sekolah,Kelas 2,250000,,,",
	}, "\n")

	rows, err := parseRosterCSV(strings.NewReader(csvData), sched)
	if err != nil {
		t.Fatalf("parseRosterCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.Name != "Ahmad Fauzi" || first.NIS != "2024001" || first.Category != model.CategoryMenetap {
		t.Errorf("first row parsed wrong: %+v", first)
	}
	if first.MonthlyFee != 250000 {
		t.Errorf("MonthlyFee = %d, want 250000", first.MonthlyFee)
	}
	if first.Fees[model.FeePembangunan1] != 500000 {
		t.Errorf("pembangunan1 = %d, want 500000", first.Fees[model.FeePembangunan1])
	}
	if _, ok := first.Fees[model.FeePembangunan2]; ok {
		t.Error("zero fee amount should not be stored")
	}
	if first.Fees[model.FeeCatering] != 150000 {
		t.Errorf("catering = %d, want 150000", first.Fees[model.FeeCatering])
	}

	second := rows[1]
	if second.Status != model.RowValid {
		t.Errorf("empty fee cells should stay valid, got %s: %v", second.Status, second.Messages)
	}
	if len(second.Fees) != 0 {
		t.Errorf("second row should have no fees, got %v", second.Fees)
	}
}

func TestParseRosterCSV_ColumnOrderIndependent(t *testing.T) {
	sched := testSchedule()
	csvData := strings.Join([]string{
		"monthlyFee,class,category,nis,name",
		"250000,Kelas 1,Menetap,2024001,Ahmad Fauzi",
	}, "\n")

	rows, err := parseRosterCSV(strings.NewReader(csvData), sched)
	if err != nil {
		t.Fatalf("parseRosterCSV: %v", err)
	}
	if rows[0].Name != "Ahmad Fauzi" || rows[0].ClassName != "Kelas 1" {
		t.Errorf("header-keyed parsing failed: %+v", rows[0])
	}
}

func TestParseRosterCSV_BadNumber(t *testing.T) {
	sched := testSchedule()
	csvData := "name,nis,category,class,monthlyFee\nAhmad,2024001,Menetap,Kelas 1,abc"

	rows, err := parseRosterCSV(strings.NewReader(csvData), sched)
	if err != nil {
		t.Fatalf("parseRosterCSV: %v", err)
	}
	if rows[0].Status != model.RowError {
		t.Errorf("non-numeric monthlyFee should be an error row, got %s", rows[0].Status)
	}
}

func TestValidateRows(t *testing.T) {
	sched := testSchedule()
	existing := map[string]bool{"2023001": true}

	rows := []model.ImportRow{
		{Line: 1, Name: "Valid Satu", NIS: "2024001", Category: model.CategoryMenetap, ClassName: "Kelas 1", Status: model.RowValid},
		{Line: 2, Name: "", NIS: "2024002", Category: model.CategoryMenetap, ClassName: "Kelas 1", Status: model.RowValid},
		{Line: 3, Name: "Tanpa NIS", NIS: "", Category: model.CategorySekolah, ClassName: "Kelas 2", Status: model.RowValid},
		{Line: 4, Name: "Tabrakan Roster", NIS: "2023001", Category: model.CategoryMenetap, ClassName: "Kelas 1", Status: model.RowValid},
		{Line: 5, Name: "Tabrakan Batch", NIS: "2024001", Category: model.CategoryMenetap, ClassName: "Kelas 1", Status: model.RowValid},
	}

	validateRows(rows, sched, existing)

	want := []model.ImportRowStatus{
		model.RowValid,   // clean
		model.RowError,   // empty name
		model.RowError,   // empty NIS while UseNIS
		model.RowWarning, // roster collision
		model.RowWarning, // in-batch duplicate
	}
	for i, status := range want {
		if rows[i].Status != status {
			t.Errorf("row %d status = %s, want %s (%v)", i+1, rows[i].Status, status, rows[i].Messages)
		}
	}
}

func TestValidateRows_NISOptionalWhenDisabled(t *testing.T) {
	sched := testSchedule()
	sched.UseNIS = false

	rows := []model.ImportRow{
		{Line: 1, Name: "Tanpa NIS", Category: model.CategoryMenetap, ClassName: "Kelas 1", Status: model.RowValid},
	}
	validateRows(rows, sched, nil)

	if rows[0].Status != model.RowValid {
		t.Errorf("empty NIS should be fine when the schedule skips NIS, got %s: %v", rows[0].Status, rows[0].Messages)
	}
}

func TestCanCommit(t *testing.T) {
	batch := func(state model.ImportState, rows []model.ImportRow) *model.ImportBatch {
		b := &model.ImportBatch{ID: "b1", State: state, Rows: rows}
		b.Recount()
		return b
	}

	tests := []struct {
		name    string
		batch   *model.ImportBatch
		wantErr error
	}{
		{
			name: "preview without errors",
			batch: batch(model.ImportStatePreview, []model.ImportRow{
				{Status: model.RowValid},
				{Status: model.RowWarning},
			}),
			wantErr: nil,
		},
		{
			name: "preview with error rows",
			batch: batch(model.ImportStatePreview, []model.ImportRow{
				{Status: model.RowValid},
				{Status: model.RowError},
			}),
			wantErr: ErrBatchHasErrors,
		},
		{
			name:    "already importing",
			batch:   batch(model.ImportStateImporting, []model.ImportRow{{Status: model.RowValid}}),
			wantErr: ErrBatchInvalidState,
		},
		{
			name:    "already committed",
			batch:   batch(model.ImportStateSuccess, []model.ImportRow{{Status: model.RowValid}}),
			wantErr: ErrBatchInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := canCommit(tt.batch); !errors.Is(err, tt.wantErr) {
				t.Errorf("canCommit() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTemplateHeader(t *testing.T) {
	sched := testSchedule()
	got := templateHeader(sched)
	want := []string{"name", "nis", "category", "class", "monthlyFee", "pembangunan1Fee", "pembangunan2Fee", "cateringFee"}

	if len(got) != len(want) {
		t.Fatalf("header = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("header[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTemplateHeader_NoNIS(t *testing.T) {
	sched := testSchedule()
	sched.UseNIS = false

	for _, col := range templateHeader(sched) {
		if col == "nis" {
			t.Error("nis column should be absent when the schedule skips NIS")
		}
	}
}
