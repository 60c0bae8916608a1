package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sppku/sppku-backend/internal/config"
	"github.com/sppku/sppku-backend/internal/model"
	"github.com/sppku/sppku-backend/internal/repository"
)

// Staged batches expire if the admin abandons the wizard.
const importBatchTTL = 30 * time.Minute

// Import pipeline errors.
var (
	ErrBatchNotFound     = errors.New("import batch not found or expired")
	ErrBatchHasErrors    = errors.New("batch still contains error rows")
	ErrBatchInvalidState = errors.New("batch is not in a committable state")
	ErrBatchEmpty        = errors.New("file contains no data rows")
	ErrMalformedCSV      = errors.New("file is not a readable CSV")
)

// ImportService runs the roster CSV wizard. An uploaded file is parsed and
// validated into a batch staged in Redis; the admin previews the annotated
// rows and either commits or resets. Nothing touches the roster before
// commit.
type ImportService struct {
	studentRepo *repository.StudentRepository
	settingSvc  *SettingService
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewImportService creates a new ImportService.
func NewImportService(
	studentRepo *repository.StudentRepository,
	settingSvc *SettingService,
	rdb *redis.Client,
	log zerolog.Logger,
) *ImportService {
	return &ImportService{
		studentRepo: studentRepo,
		settingSvc:  settingSvc,
		rdb:         rdb,
		log:         log.With().Str("component", "import_service").Logger(),
	}
}

// Upload parses and validates a CSV stream into a new staged batch.
func (s *ImportService) Upload(ctx context.Context, r io.Reader) (*model.ImportBatch, error) {
	sched, err := s.settingSvc.GetFeeSchedule(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := parseRosterCSV(r, sched)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrBatchEmpty
	}

	existing, err := s.studentRepo.ExistingNIS(ctx)
	if err != nil {
		return nil, err
	}
	validateRows(rows, sched, existing)

	batch := &model.ImportBatch{
		ID:        uuid.New().String(),
		State:     model.ImportStatePreview,
		Rows:      rows,
		CreatedAt: time.Now(),
	}
	batch.Recount()

	if err := s.saveBatch(ctx, batch); err != nil {
		return nil, err
	}
	s.log.Info().
		Str("batch_id", batch.ID).
		Int("valid", batch.ValidCount).
		Int("warning", batch.WarningCount).
		Int("error", batch.ErrorCount).
		Msg("import batch staged")
	return batch, nil
}

// GetBatch retrieves a staged batch for preview.
func (s *ImportService) GetBatch(ctx context.Context, batchID string) (*model.ImportBatch, error) {
	return s.loadBatch(ctx, batchID)
}

// Commit inserts the batch's Valid and Warning rows as students in one
// transaction. Commit is rejected while any row is still an error.
func (s *ImportService) Commit(ctx context.Context, batchID string, year int) (*model.ImportBatch, error) {
	batch, err := s.loadBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if err := canCommit(batch); err != nil {
		return nil, err
	}

	batch.State = model.ImportStateImporting
	if err := s.saveBatch(ctx, batch); err != nil {
		return nil, err
	}

	importable := make([]model.ImportRow, 0, len(batch.Rows))
	for _, row := range batch.Rows {
		if row.Status != model.RowError {
			importable = append(importable, row)
		}
	}

	created, err := s.studentRepo.CreateBatch(ctx, importable, year)
	if err != nil {
		// Roll the wizard back to preview so the admin can retry.
		batch.State = model.ImportStatePreview
		_ = s.saveBatch(ctx, batch)
		s.log.Error().Err(err).Str("batch_id", batchID).Msg("import commit failed")
		return nil, err
	}

	batch.State = model.ImportStateSuccess
	batch.ImportedCount = created
	if err := s.saveBatch(ctx, batch); err != nil {
		return nil, err
	}
	s.log.Info().Str("batch_id", batchID).Int("imported", created).Msg("import committed")
	return batch, nil
}

// canCommit reports whether a staged batch may move to importing: only a
// previewed batch with zero error rows qualifies.
func canCommit(batch *model.ImportBatch) error {
	if batch.State != model.ImportStatePreview {
		return ErrBatchInvalidState
	}
	if batch.ErrorCount > 0 {
		return ErrBatchHasErrors
	}
	return nil
}

// Reset discards a staged batch.
func (s *ImportService) Reset(ctx context.Context, batchID string) error {
	deleted, err := s.rdb.Del(ctx, config.CacheKey.ImportBatchKey(batchID)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrBatchNotFound
	}
	return nil
}

// WriteTemplate writes the CSV template matching the current fee schedule:
// the header the parser expects plus two sample rows.
func (s *ImportService) WriteTemplate(ctx context.Context, w io.Writer) error {
	sched, err := s.settingSvc.GetFeeSchedule(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := templateHeader(sched)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, sample := range [][2]string{
		{"Ahmad Fauzi", "Menetap"},
		{"Siti Aisyah", "Sekolah"},
	} {
		record := make([]string, 0, len(header))
		record = append(record, sample[0])
		if sched.UseNIS {
			record = append(record, "2024001")
		}
		record = append(record, sample[1], "Kelas 1", "250000")
		for len(record) < len(header) {
			record = append(record, "0")
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ─── CSV Parsing ───

// templateHeader builds the column list the parser accepts: identity and
// SPP columns, then one fee column per schedule slot.
func templateHeader(sched *model.FeeSchedule) []string {
	header := []string{"name"}
	if sched.UseNIS {
		header = append(header, "nis")
	}
	header = append(header, "category", "class", "monthlyFee")
	for stage := 1; stage <= sched.PembangunanStages; stage++ {
		header = append(header, fmt.Sprintf("pembangunan%dFee", stage))
	}
	for _, kind := range model.OptionalFeeOrder {
		if kind == model.FeeLainnya {
			continue // lainnya is filled by manual payments, never imported
		}
		if sched.EnabledFees[kind] {
			header = append(header, string(kind)+"Fee")
		}
	}
	return header
}

// parseRosterCSV reads the stream into rows. Column positions come from
// the header line, so column order in the file does not matter. A stream
// that cannot be read as CSV at all fails the upload; a single bad line
// becomes an error row instead.
func parseRosterCSV(r io.Reader, sched *model.FeeSchedule) ([]model.ImportRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, ErrMalformedCSV
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var rows []model.ImportRow
	line := 0
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			rows = append(rows, model.ImportRow{
				Line:     line,
				Status:   model.RowError,
				Messages: []string{"baris tidak dapat dibaca"},
			})
			continue
		}
		rows = append(rows, parseRow(line, record, index, sched))
	}
	return rows, nil
}

func parseRow(line int, record []string, index map[string]int, sched *model.FeeSchedule) model.ImportRow {
	field := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	row := model.ImportRow{
		Line:      line,
		Name:      field("name"),
		NIS:       field("nis"),
		ClassName: field("class"),
		Status:    model.RowValid,
		Fees:      map[model.FeeKind]int64{},
	}

	switch field("category") {
	case string(model.CategoryMenetap):
		row.Category = model.CategoryMenetap
	case string(model.CategorySekolah):
		row.Category = model.CategorySekolah
	default:
		row.Category = ""
	}

	if raw := field("monthlyFee"); raw != "" {
		fee, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || fee < 0 {
			row.Status = model.RowError
			row.Messages = append(row.Messages, "monthlyFee bukan angka yang valid")
		} else {
			row.MonthlyFee = fee
		}
	}

	for stage := 1; stage <= sched.PembangunanStages; stage++ {
		parseFeeField(&row, field(fmt.Sprintf("pembangunan%dFee", stage)), model.PembangunanKind(stage))
	}
	for _, kind := range model.OptionalFeeOrder {
		if kind == model.FeeLainnya || !sched.EnabledFees[kind] {
			continue
		}
		parseFeeField(&row, field(string(kind)+"Fee"), kind)
	}
	return row
}

func parseFeeField(row *model.ImportRow, raw string, kind model.FeeKind) {
	if raw == "" {
		return
	}
	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || amount < 0 {
		row.Status = model.RowError
		row.Messages = append(row.Messages, fmt.Sprintf("%s bukan angka yang valid", kind))
		return
	}
	if amount > 0 {
		row.Fees[kind] = amount
	}
}

// validateRows applies the acceptance rules in place: an empty name (or an
// empty NIS while the schedule uses NIS) is an error; an NIS colliding with
// the roster or an earlier batch row is a warning. Warnings still import.
func validateRows(rows []model.ImportRow, sched *model.FeeSchedule, existingNIS map[string]bool) {
	seen := make(map[string]int)
	for i := range rows {
		row := &rows[i]

		if row.Name == "" {
			row.Status = model.RowError
			row.Messages = append(row.Messages, "nama wajib diisi")
		}
		if row.Category == "" {
			row.Status = model.RowError
			row.Messages = append(row.Messages, "kategori harus Menetap atau Sekolah")
		}
		if row.ClassName == "" {
			row.Status = model.RowError
			row.Messages = append(row.Messages, "kelas wajib diisi")
		}
		if sched.UseNIS && row.NIS == "" {
			row.Status = model.RowError
			row.Messages = append(row.Messages, "NIS wajib diisi")
		}
		if row.Status == model.RowError {
			continue
		}

		if row.NIS != "" {
			if existingNIS[row.NIS] {
				row.Status = model.RowWarning
				row.Messages = append(row.Messages, "NIS sudah terdaftar di data siswa")
			}
			if first, ok := seen[row.NIS]; ok {
				row.Status = model.RowWarning
				row.Messages = append(row.Messages, fmt.Sprintf("NIS duplikat dengan baris %d", first))
			} else {
				seen[row.NIS] = row.Line
			}
		}
	}
}

// ─── Redis Staging ───

func (s *ImportService) saveBatch(ctx context.Context, batch *model.ImportBatch) error {
	raw, err := json.Marshal(batch)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, config.CacheKey.ImportBatchKey(batch.ID), raw, importBatchTTL).Err()
}

func (s *ImportService) loadBatch(ctx context.Context, batchID string) (*model.ImportBatch, error) {
	raw, err := s.rdb.Get(ctx, config.CacheKey.ImportBatchKey(batchID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}
	batch := &model.ImportBatch{}
	if err := json.Unmarshal([]byte(raw), batch); err != nil {
		return nil, err
	}
	return batch, nil
}
