// Package recap derives per-student and per-month totals from the roster.
// Everything here is a pure function of its inputs: safe to recompute on
// every request, no hidden state. Data sizes are small (at most a few
// hundred students) so no memoization is attempted.
package recap

import (
	"fmt"

	"github.com/sppku/sppku-backend/internal/model"
)

// MonthCount is the fixed width of a monthly payment vector.
const MonthCount = 12

// IntegrityError reports a malformed monthly payment vector. It is a
// programming/data error, not a user-recoverable condition: callers must
// fail the whole computation rather than render a corrupted total.
type IntegrityError struct {
	StudentID int
	Reason    string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("monthly payment vector for student %d: %s", e.StudentID, e.Reason)
}

// ValidateMonthlyVector checks that payments holds exactly 12 entries with
// months 1..12 each appearing exactly once.
func ValidateMonthlyVector(studentID int, payments []model.MonthlyPayment) error {
	if len(payments) != MonthCount {
		return &IntegrityError{StudentID: studentID, Reason: fmt.Sprintf("expected %d entries, got %d", MonthCount, len(payments))}
	}
	var seen [MonthCount + 1]bool
	for _, p := range payments {
		if p.Month < 1 || p.Month > MonthCount {
			return &IntegrityError{StudentID: studentID, Reason: fmt.Sprintf("month %d out of range", p.Month)}
		}
		if seen[p.Month] {
			return &IntegrityError{StudentID: studentID, Reason: fmt.Sprintf("duplicate month %d", p.Month)}
		}
		seen[p.Month] = true
	}
	return nil
}

// StudentTotals are the derived money columns of one recap row.
type StudentTotals struct {
	// TotalFees sums the pembangunan installments plus the optional fees
	// that the schedule enables. Amounts under disabled kinds are ignored
	// even when present on the record.
	TotalFees int64 `json:"total_fees"`
	// TotalSPP is paid-month count times the student's nominal monthly
	// rate. Recorded amounts that diverge from the rate do not move this
	// figure: the column means "months paid", not "amount collected".
	TotalSPP   int64 `json:"total_spp"`
	PaidMonths int   `json:"paid_months"`
}

// ComputeStudentTotals derives the fee and SPP totals for one student.
func ComputeStudentTotals(s *model.Student, sched *model.FeeSchedule) (StudentTotals, error) {
	if err := ValidateMonthlyVector(s.ID, s.MonthlyPayments); err != nil {
		return StudentTotals{}, err
	}

	var totals StudentTotals
	for kind, amount := range s.Fees {
		if sched.FeeEnabled(kind) {
			totals.TotalFees += amount
		}
	}
	for _, p := range s.MonthlyPayments {
		if p.Status == model.StatusPaid {
			totals.PaidMonths++
		}
	}
	totals.TotalSPP = int64(totals.PaidMonths) * s.MonthlyFee
	return totals, nil
}

// MonthTotal is one footer cell: how many students in the slice have paid
// the month, how many have not, and the sum of recorded amounts.
type MonthTotal struct {
	PaidCount   int   `json:"paid_count"`
	UnpaidCount int   `json:"unpaid_count"`
	AmountSum   int64 `json:"amount_sum"`
}

// ComputeMonthlyTotals folds a roster slice into twelve footer cells.
// For every month, PaidCount+UnpaidCount equals the slice size; there is
// no third payment state.
func ComputeMonthlyTotals(students []model.Student) ([MonthCount]MonthTotal, error) {
	var totals [MonthCount]MonthTotal
	for i := range students {
		s := &students[i]
		if err := ValidateMonthlyVector(s.ID, s.MonthlyPayments); err != nil {
			return totals, err
		}
		for _, p := range s.MonthlyPayments {
			cell := &totals[p.Month-1]
			if p.Status == model.StatusPaid {
				cell.PaidCount++
				if p.Amount != nil {
					cell.AmountSum += *p.Amount
				}
			} else {
				cell.UnpaidCount++
			}
		}
	}
	return totals, nil
}
