package recap

import "github.com/sppku/sppku-backend/internal/model"

// Row is one student line of the grid: twelve status cells, one amount per
// fee column (aligned with Grid.Columns), and the derived totals.
type Row struct {
	StudentID int            `json:"student_id"`
	NIS       string         `json:"nis,omitempty"`
	Name      string         `json:"name"`
	Category  model.Category `json:"category"`
	ClassName string         `json:"class_name"`
	// Months holds the twelve payment cells ordered January..December.
	// Paid cells carry amount, date, method and officer for the tooltip.
	Months   []model.MonthlyPayment `json:"months"`
	FeeCells []int64                `json:"fee_cells"`
	Totals   StudentTotals          `json:"totals"`
}

// Footer is the totals row rendered under the grid.
type Footer struct {
	StudentCount   int                     `json:"student_count"`
	Months         [MonthCount]MonthTotal  `json:"months"`
	GrandTotalFees int64                   `json:"grand_total_fees"`
	GrandTotalSPP  int64                   `json:"grand_total_spp"`
}

// Grid is the full recap matrix for a (filtered) roster slice.
type Grid struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
	Footer  Footer   `json:"footer"`
}

// BuildGrid shapes a roster slice into the recap matrix. The month cells are
// ordered by month regardless of storage order; a malformed payment vector
// aborts the whole build.
func BuildGrid(roster []model.Student, sched *model.FeeSchedule) (*Grid, error) {
	columns := FeeColumns(sched)

	grid := &Grid{
		Columns: columns,
		Rows:    make([]Row, 0, len(roster)),
	}
	grid.Footer.StudentCount = len(roster)

	for i := range roster {
		s := &roster[i]
		totals, err := ComputeStudentTotals(s, sched)
		if err != nil {
			return nil, err
		}

		months := make([]model.MonthlyPayment, MonthCount)
		for _, p := range s.MonthlyPayments {
			months[p.Month-1] = p
		}

		cells := make([]int64, len(columns))
		for c, col := range columns {
			cells[c] = col.Accessor(s)
		}

		row := Row{
			StudentID: s.ID,
			Name:      s.Name,
			Category:  s.Category,
			ClassName: s.ClassName,
			Months:    months,
			FeeCells:  cells,
			Totals:    totals,
		}
		if sched.UseNIS {
			row.NIS = s.NIS
		}
		grid.Rows = append(grid.Rows, row)

		grid.Footer.GrandTotalFees += totals.TotalFees
		grid.Footer.GrandTotalSPP += totals.TotalSPP
	}

	monthly, err := ComputeMonthlyTotals(roster)
	if err != nil {
		return nil, err
	}
	grid.Footer.Months = monthly

	return grid, nil
}
