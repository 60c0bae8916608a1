package model

import "time"

// Category represents the student's enrollment category.
type Category string

const (
	CategoryMenetap Category = "Menetap"
	CategorySekolah Category = "Sekolah"
)

// PaymentStatus is the state of one monthly SPP slot. There are exactly two
// states, with no partial or pending payments.
type PaymentStatus string

const (
	StatusPaid   PaymentStatus = "PAID"
	StatusUnpaid PaymentStatus = "UNPAID"
)

// PaymentMethod is how a payment was collected.
type PaymentMethod string

const (
	MethodKas      PaymentMethod = "Kas"
	MethodTransfer PaymentMethod = "Transfer"
	MethodQRIS     PaymentMethod = "QRIS"
)

// MonthlyPayment is one slot of a student's twelve-month SPP vector.
// Amount and PaidDate are present iff Status is PAID.
type MonthlyPayment struct {
	Month      int           `json:"month"` // 1..12
	Status     PaymentStatus `json:"status"`
	Amount     *int64        `json:"amount,omitempty"`
	PaidDate   *time.Time    `json:"paid_date,omitempty"`
	Method     PaymentMethod `json:"method,omitempty"`
	RecordedBy string        `json:"recorded_by,omitempty"`
}

// EmptyMonthlyVector returns the twelve UNPAID slots a student carries for a
// year no payment has touched yet. Slots are persisted at student creation
// only for that year, so later years start from this.
func EmptyMonthlyVector() []MonthlyPayment {
	vector := make([]MonthlyPayment, 12)
	for i := range vector {
		vector[i] = MonthlyPayment{Month: i + 1, Status: StatusUnpaid}
	}
	return vector
}

// Student represents one roster entry with its payment vector and fee amounts.
type Student struct {
	ID        int      `json:"id"`
	NIS       string   `json:"nis,omitempty"`
	Name      string   `json:"name"`
	Category  Category `json:"category"`
	ClassName string   `json:"class_name"`
	// MonthlyFee is the nominal SPP rate in whole Rupiah.
	MonthlyFee int64 `json:"monthly_fee"`
	// MonthlyPayments holds exactly 12 entries, index 0 = January, for the
	// year the roster was loaded for.
	MonthlyPayments []MonthlyPayment `json:"monthly_payments"`
	// Fees maps fee kinds to their amounts. Kinds disabled by the fee
	// schedule may still appear here; aggregation ignores them.
	Fees      map[FeeKind]int64 `json:"fees"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// CreateStudentRequest is the payload for registering a single student.
type CreateStudentRequest struct {
	NIS        string            `json:"nis" binding:"omitempty,max=20"`
	Name       string            `json:"name" binding:"required,min=2,max=100"`
	Category   Category          `json:"category" binding:"required,oneof=Menetap Sekolah"`
	ClassName  string            `json:"class_name" binding:"required,min=1,max=100"`
	MonthlyFee int64             `json:"monthly_fee" binding:"required,min=0"`
	Fees       map[FeeKind]int64 `json:"fees" binding:"omitempty"`
}

// UpdateStudentRequest is the payload for updating a student's static attributes.
type UpdateStudentRequest struct {
	NIS        string   `json:"nis" binding:"omitempty,max=20"`
	Name       string   `json:"name" binding:"required,min=2,max=100"`
	Category   Category `json:"category" binding:"required,oneof=Menetap Sekolah"`
	ClassName  string   `json:"class_name" binding:"required,min=1,max=100"`
	MonthlyFee int64    `json:"monthly_fee" binding:"required,min=0"`
}
