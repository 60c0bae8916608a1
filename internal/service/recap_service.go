package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/sppku/sppku-backend/internal/model"
	"github.com/sppku/sppku-backend/internal/recap"
	"github.com/sppku/sppku-backend/internal/repository"
)

// Indonesian month abbreviations, January first. Shared by the recap grid
// header and the CSV export.
var monthLabels = [recap.MonthCount]string{
	"Jan", "Feb", "Mar", "Apr", "Mei", "Jun",
	"Jul", "Agu", "Sep", "Okt", "Nov", "Des",
}

// RecapService builds the payment recap grid and its CSV export.
type RecapService struct {
	studentRepo *repository.StudentRepository
	settingSvc  *SettingService
	log         zerolog.Logger
}

// NewRecapService creates a new RecapService.
func NewRecapService(studentRepo *repository.StudentRepository, settingSvc *SettingService, log zerolog.Logger) *RecapService {
	return &RecapService{
		studentRepo: studentRepo,
		settingSvc:  settingSvc,
		log:         log.With().Str("component", "recap_service").Logger(),
	}
}

// GetGrid loads the roster for the year, applies the filter, and shapes the
// recap matrix. A malformed monthly vector fails the whole request rather
// than rendering wrong totals.
func (s *RecapService) GetGrid(ctx context.Context, year int, filter recap.Filter) (*recap.Grid, error) {
	roster, sched, err := s.loadFiltered(ctx, year, filter)
	if err != nil {
		return nil, err
	}

	grid, err := recap.BuildGrid(roster, sched)
	if err != nil {
		s.log.Error().Err(err).Int("year", year).Msg("recap grid build failed")
		return nil, err
	}
	return grid, nil
}

// WriteCSV streams the filtered recap as CSV. Columns mirror the on-screen
// grid: identity, twelve month statuses, fee columns, totals.
func (s *RecapService) WriteCSV(ctx context.Context, w io.Writer, year int, filter recap.Filter) error {
	roster, sched, err := s.loadFiltered(ctx, year, filter)
	if err != nil {
		return err
	}
	grid, err := recap.BuildGrid(roster, sched)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)

	header := []string{"No"}
	if sched.UseNIS {
		header = append(header, "NIS")
	}
	header = append(header, "Nama", "Kategori", "Kelas")
	header = append(header, monthLabels[:]...)
	for _, col := range grid.Columns {
		header = append(header, col.Label)
	}
	header = append(header, "Total Biaya", "Total SPP")
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, row := range grid.Rows {
		record := []string{strconv.Itoa(i + 1)}
		if sched.UseNIS {
			record = append(record, row.NIS)
		}
		record = append(record, row.Name, string(row.Category), row.ClassName)
		for _, cell := range row.Months {
			record = append(record, string(cell.Status))
		}
		for _, amount := range row.FeeCells {
			record = append(record, strconv.FormatInt(amount, 10))
		}
		record = append(record,
			strconv.FormatInt(row.Totals.TotalFees, 10),
			strconv.FormatInt(row.Totals.TotalSPP, 10),
		)
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// CSVFilename builds the export filename for the year.
func CSVFilename(year int) string {
	return fmt.Sprintf("rekap-pembayaran-%d.csv", year)
}

func (s *RecapService) loadFiltered(ctx context.Context, year int, filter recap.Filter) ([]model.Student, *model.FeeSchedule, error) {
	sched, err := s.settingSvc.GetFeeSchedule(ctx)
	if err != nil {
		return nil, nil, err
	}
	roster, err := s.studentRepo.ListRoster(ctx, year)
	if err != nil {
		return nil, nil, err
	}
	if filter.Active() {
		roster = recap.FilterRoster(roster, filter, sched)
	}
	return roster, sched, nil
}
