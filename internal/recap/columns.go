package recap

import "github.com/sppku/sppku-backend/internal/model"

// Column describes one fee column of the recap grid. The set is derived
// from the fee schedule, never hard-coded: installment columns up to the
// configured stage count, then the enabled optional kinds in canonical
// order (catering, seragam, buku, lainnya).
type Column struct {
	Key   model.FeeKind `json:"key"`
	Label string        `json:"label"`
	// Accessor reads the column's amount off a student record.
	Accessor func(*model.Student) int64 `json:"-"`
}

// FeeColumns builds the ordered column descriptors for a schedule.
// Rebuild whenever the schedule changes, since the result captures it.
func FeeColumns(sched *model.FeeSchedule) []Column {
	columns := make([]Column, 0, sched.PembangunanStages+len(model.OptionalFeeOrder))

	for stage := 1; stage <= sched.PembangunanStages; stage++ {
		kind := model.PembangunanKind(stage)
		columns = append(columns, feeColumn(kind))
	}
	for _, kind := range model.OptionalFeeOrder {
		if sched.EnabledFees[kind] {
			columns = append(columns, feeColumn(kind))
		}
	}
	return columns
}

func feeColumn(kind model.FeeKind) Column {
	return Column{
		Key:   kind,
		Label: model.FeeLabel(kind),
		Accessor: func(s *model.Student) int64 {
			return s.Fees[kind]
		},
	}
}
