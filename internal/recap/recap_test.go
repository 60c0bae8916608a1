package recap

import (
	"errors"
	"testing"
	"time"

	"github.com/sppku/sppku-backend/internal/model"
)

// testStudent builds a student with the first paidMonths months PAID at the
// given recorded amount, the rest UNPAID.
func testStudent(id int, name string, paidMonths int, recorded int64, fees map[model.FeeKind]int64) model.Student {
	payments := make([]model.MonthlyPayment, 0, MonthCount)
	paidDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	for m := 1; m <= MonthCount; m++ {
		p := model.MonthlyPayment{Month: m, Status: model.StatusUnpaid}
		if m <= paidMonths {
			amount := recorded
			p.Status = model.StatusPaid
			p.Amount = &amount
			p.PaidDate = &paidDate
			p.Method = model.MethodKas
			p.RecordedBy = "Admin"
		}
		payments = append(payments, p)
	}
	if fees == nil {
		fees = map[model.FeeKind]int64{}
	}
	return model.Student{
		ID:              id,
		Name:            name,
		Category:        model.CategoryMenetap,
		ClassName:       "Tgk Ibnu",
		MonthlyFee:      250000,
		MonthlyPayments: payments,
		Fees:            fees,
	}
}

func TestValidateMonthlyVector(t *testing.T) {
	valid := testStudent(1, "Santri 1", 3, 250000, nil).MonthlyPayments

	tests := []struct {
		name    string
		mutate  func([]model.MonthlyPayment) []model.MonthlyPayment
		wantErr bool
	}{
		{
			name:   "complete vector is valid",
			mutate: func(p []model.MonthlyPayment) []model.MonthlyPayment { return p },
		},
		{
			name:    "missing month",
			mutate:  func(p []model.MonthlyPayment) []model.MonthlyPayment { return p[:11] },
			wantErr: true,
		},
		{
			name: "duplicate month",
			mutate: func(p []model.MonthlyPayment) []model.MonthlyPayment {
				p[11].Month = 5
				return p
			},
			wantErr: true,
		},
		{
			name: "month out of range",
			mutate: func(p []model.MonthlyPayment) []model.MonthlyPayment {
				p[0].Month = 13
				return p
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payments := make([]model.MonthlyPayment, len(valid))
			copy(payments, valid)
			err := ValidateMonthlyVector(1, tt.mutate(payments))
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMonthlyVector() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var ie *IntegrityError
				if !errors.As(err, &ie) {
					t.Errorf("error %v is not an *IntegrityError", err)
				}
			}
		})
	}
}

func TestValidateMonthlyVector_AcceptsSeededYear(t *testing.T) {
	// A year nobody has paid in yet carries the synthesized UNPAID vector,
	// which must aggregate like any other.
	s := testStudent(1, "Santri 1", 0, 0, nil)
	s.MonthlyPayments = model.EmptyMonthlyVector()

	if err := ValidateMonthlyVector(s.ID, s.MonthlyPayments); err != nil {
		t.Fatalf("ValidateMonthlyVector() on a fresh year = %v", err)
	}

	totals, err := ComputeStudentTotals(&s, model.DefaultFeeSchedule())
	if err != nil {
		t.Fatalf("ComputeStudentTotals() on a fresh year = %v", err)
	}
	if totals.TotalSPP != 0 {
		t.Errorf("TotalSPP = %d, want 0 for an all-UNPAID year", totals.TotalSPP)
	}
}

func TestComputeStudentTotals(t *testing.T) {
	sched := &model.FeeSchedule{
		PembangunanStages: 1,
		EnabledFees:       map[model.FeeKind]bool{model.FeeCatering: true},
	}

	tests := []struct {
		name          string
		student       model.Student
		wantFees      int64
		wantSPP       int64
		wantPaid      int
	}{
		{
			name: "installment plus enabled optional fee",
			student: testStudent(1, "Santri A", 12, 250000, map[model.FeeKind]int64{
				model.FeePembangunan1: 500000,
				model.FeeCatering:     150000,
			}),
			wantFees: 650000,
			wantSPP:  3000000,
			wantPaid: 12,
		},
		{
			name: "disabled fee kinds are ignored even when present",
			student: testStudent(2, "Santri B", 6, 250000, map[model.FeeKind]int64{
				model.FeePembangunan1: 500000,
				model.FeePembangunan2: 750000, // beyond stage bound
				model.FeeSeragam:      200000, // not enabled
			}),
			wantFees: 500000,
			wantSPP:  1500000,
			wantPaid: 6,
		},
		{
			name:     "no payments no fees",
			student:  testStudent(3, "Santri C", 0, 0, nil),
			wantFees: 0,
			wantSPP:  0,
			wantPaid: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeStudentTotals(&tt.student, sched)
			if err != nil {
				t.Fatalf("ComputeStudentTotals() error = %v", err)
			}
			if got.TotalFees != tt.wantFees {
				t.Errorf("TotalFees = %d, want %d", got.TotalFees, tt.wantFees)
			}
			if got.TotalSPP != tt.wantSPP {
				t.Errorf("TotalSPP = %d, want %d", got.TotalSPP, tt.wantSPP)
			}
			if got.PaidMonths != tt.wantPaid {
				t.Errorf("PaidMonths = %d, want %d", got.PaidMonths, tt.wantPaid)
			}
		})
	}
}

func TestComputeStudentTotals_UsesNominalRate(t *testing.T) {
	// Recorded amount diverges from the monthly rate; the total must still
	// reflect months paid at the nominal rate.
	s := testStudent(1, "Santri A", 4, 200000, nil)
	sched := model.DefaultFeeSchedule()

	got, err := ComputeStudentTotals(&s, sched)
	if err != nil {
		t.Fatalf("ComputeStudentTotals() error = %v", err)
	}
	if want := int64(4 * 250000); got.TotalSPP != want {
		t.Errorf("TotalSPP = %d, want %d (nominal rate, not collected amount)", got.TotalSPP, want)
	}
}

func TestComputeMonthlyTotals(t *testing.T) {
	roster := []model.Student{
		testStudent(1, "Santri A", 12, 250000, nil),
		testStudent(2, "Santri B", 6, 250000, nil),
		testStudent(3, "Santri C", 0, 0, nil),
	}

	totals, err := ComputeMonthlyTotals(roster)
	if err != nil {
		t.Fatalf("ComputeMonthlyTotals() error = %v", err)
	}

	for m, cell := range totals {
		if cell.PaidCount+cell.UnpaidCount != len(roster) {
			t.Errorf("month %d: paid %d + unpaid %d != %d students", m+1, cell.PaidCount, cell.UnpaidCount, len(roster))
		}
	}

	jan := totals[0]
	if jan.PaidCount != 2 || jan.UnpaidCount != 1 {
		t.Errorf("January = {paid:%d, unpaid:%d}, want {paid:2, unpaid:1}", jan.PaidCount, jan.UnpaidCount)
	}
	if want := int64(500000); jan.AmountSum != want {
		t.Errorf("January amount sum = %d, want %d", jan.AmountSum, want)
	}

	jul := totals[6]
	if jul.PaidCount != 1 || jul.UnpaidCount != 2 {
		t.Errorf("July = {paid:%d, unpaid:%d}, want {paid:1, unpaid:2}", jul.PaidCount, jul.UnpaidCount)
	}
}

func TestComputeMonthlyTotals_RejectsMalformedVector(t *testing.T) {
	corrupt := testStudent(7, "Santri X", 1, 250000, nil)
	corrupt.MonthlyPayments[3].Month = 2 // introduces a duplicate and a gap

	_, err := ComputeMonthlyTotals([]model.Student{corrupt})
	if err == nil {
		t.Fatal("ComputeMonthlyTotals() accepted a duplicate month, want integrity error")
	}
	var ie *IntegrityError
	if !errors.As(err, &ie) {
		t.Fatalf("error %v is not an *IntegrityError", err)
	}
	if ie.StudentID != 7 {
		t.Errorf("IntegrityError.StudentID = %d, want 7", ie.StudentID)
	}
}
