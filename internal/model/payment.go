package model

import (
	"time"

	"github.com/google/uuid"
)

// PaymentType is what a payment entry pays for. SPP targets one monthly slot;
// the others target a one-off fee bucket. Manual carries a free-form label.
type PaymentType string

const (
	PaymentSPP          PaymentType = "SPP"
	PaymentPembangunan1 PaymentType = "Pembangunan 1"
	PaymentPembangunan2 PaymentType = "Pembangunan 2"
	PaymentPembangunan3 PaymentType = "Pembangunan 3"
	PaymentCatering     PaymentType = "Catering"
	PaymentSeragam      PaymentType = "Seragam"
	PaymentBuku         PaymentType = "Buku"
	PaymentManual       PaymentType = "Manual"
)

// FeeKind maps a non-SPP payment type to the fee bucket it fills.
// Manual payments land in the "lainnya" bucket.
func (t PaymentType) FeeKind() (FeeKind, bool) {
	switch t {
	case PaymentPembangunan1:
		return FeePembangunan1, true
	case PaymentPembangunan2:
		return FeePembangunan2, true
	case PaymentPembangunan3:
		return FeePembangunan3, true
	case PaymentCatering:
		return FeeCatering, true
	case PaymentSeragam:
		return FeeSeragam, true
	case PaymentBuku:
		return FeeBuku, true
	case PaymentManual:
		return FeeLainnya, true
	}
	return "", false
}

// PembangunanStage returns the installment index of a Pembangunan payment
// type, or 0 when the type is not an installment.
func (t PaymentType) PembangunanStage() int {
	switch t {
	case PaymentPembangunan1:
		return 1
	case PaymentPembangunan2:
		return 2
	case PaymentPembangunan3:
		return 3
	}
	return 0
}

// RecordPaymentRequest is the payload for recording one payment event.
type RecordPaymentRequest struct {
	StudentID int         `json:"student_id" binding:"required"`
	Type      PaymentType `json:"type" binding:"required,oneof=SPP 'Pembangunan 1' 'Pembangunan 2' 'Pembangunan 3' Catering Seragam Buku Manual"`
	Amount    int64       `json:"amount" binding:"min=0"`
	Method    PaymentMethod `json:"method" binding:"required,oneof=Kas Transfer QRIS"`
	Date      string      `json:"date" binding:"required,datetime=2006-01-02"`
	// Month is required iff Type is SPP.
	Month *int `json:"month" binding:"omitempty,min=1,max=12"`
	// CustomLabel is required iff Type is Manual.
	CustomLabel string `json:"custom_label" binding:"omitempty,max=100"`
	Note        string `json:"note" binding:"omitempty,max=500"`
}

// Payment is one row of the append-only payment ledger.
type Payment struct {
	ID         uuid.UUID     `json:"id"`
	StudentID  int           `json:"student_id"`
	Type       PaymentType   `json:"type"`
	Label      string        `json:"label"`
	Month      *int          `json:"month,omitempty"`
	Amount     int64         `json:"amount"`
	Method     PaymentMethod `json:"method"`
	PaidDate   time.Time     `json:"paid_date"`
	Note       string        `json:"note,omitempty"`
	RecordedBy string        `json:"recorded_by"`
	CreatedAt  time.Time     `json:"created_at"`
}
