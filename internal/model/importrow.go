package model

import "time"

// ImportRowStatus classifies one parsed CSV row.
type ImportRowStatus string

const (
	RowValid   ImportRowStatus = "valid"
	RowWarning ImportRowStatus = "warning"
	RowError   ImportRowStatus = "error"
)

// ImportRow is one parsed-and-validated line of an uploaded roster CSV.
// Rows are transient: they live only inside a staged batch and become
// Students on commit.
type ImportRow struct {
	Line       int               `json:"line"` // 1-based data line, header excluded
	NIS        string            `json:"nis,omitempty"`
	Name       string            `json:"name"`
	Category   Category          `json:"category"`
	ClassName  string            `json:"class_name"`
	MonthlyFee int64             `json:"monthly_fee"`
	Fees       map[FeeKind]int64 `json:"fees"`
	Status     ImportRowStatus   `json:"status"`
	Messages   []string          `json:"messages,omitempty"`
}

// ImportState is the wizard state of a staged batch. Transitions are linear
// (upload → preview → importing → success); reset discards the batch.
type ImportState string

const (
	ImportStateUpload    ImportState = "upload"
	ImportStatePreview   ImportState = "preview"
	ImportStateImporting ImportState = "importing"
	ImportStateSuccess   ImportState = "success"
)

// ImportBatch is a staged CSV import, held in Redis between upload and commit.
type ImportBatch struct {
	ID           string      `json:"id"`
	State        ImportState `json:"state"`
	Rows         []ImportRow `json:"rows"`
	ValidCount   int         `json:"valid_count"`
	WarningCount int         `json:"warning_count"`
	ErrorCount   int         `json:"error_count"`
	// ImportedCount is set after a successful commit.
	ImportedCount int       `json:"imported_count,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Recount refreshes the per-status counters from the rows.
func (b *ImportBatch) Recount() {
	b.ValidCount, b.WarningCount, b.ErrorCount = 0, 0, 0
	for _, row := range b.Rows {
		switch row.Status {
		case RowValid:
			b.ValidCount++
		case RowWarning:
			b.WarningCount++
		case RowError:
			b.ErrorCount++
		}
	}
}
