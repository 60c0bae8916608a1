package service

import (
	"errors"
	"testing"

	"github.com/sppku/sppku-backend/internal/model"
)

func paymentRequest(typ model.PaymentType, mutate func(*model.RecordPaymentRequest)) *model.RecordPaymentRequest {
	req := &model.RecordPaymentRequest{
		StudentID: 1,
		Type:      typ,
		Amount:    250000,
		Method:    model.MethodKas,
		Date:      "2026-03-15",
	}
	if mutate != nil {
		mutate(req)
	}
	return req
}

func TestValidatePayment(t *testing.T) {
	month := 3
	monthZero := 0
	monthThirteen := 13
	sched := testSchedule() // 2 stages, catering on, seragam/buku off

	tests := []struct {
		name    string
		req     *model.RecordPaymentRequest
		wantErr error
	}{
		{
			name:    "spp with month",
			req:     paymentRequest(model.PaymentSPP, func(r *model.RecordPaymentRequest) { r.Month = &month }),
			wantErr: nil,
		},
		{
			name:    "spp without month",
			req:     paymentRequest(model.PaymentSPP, nil),
			wantErr: ErrMonthRequired,
		},
		{
			name:    "spp with month zero",
			req:     paymentRequest(model.PaymentSPP, func(r *model.RecordPaymentRequest) { r.Month = &monthZero }),
			wantErr: ErrMonthOutOfRange,
		},
		{
			name:    "spp with month thirteen",
			req:     paymentRequest(model.PaymentSPP, func(r *model.RecordPaymentRequest) { r.Month = &monthThirteen }),
			wantErr: ErrMonthOutOfRange,
		},
		{
			name:    "fee payment with stray month",
			req:     paymentRequest(model.PaymentCatering, func(r *model.RecordPaymentRequest) { r.Month = &month }),
			wantErr: ErrMonthNotAllowed,
		},
		{
			name:    "manual without label",
			req:     paymentRequest(model.PaymentManual, nil),
			wantErr: ErrCustomLabelRequired,
		},
		{
			name:    "manual with label",
			req:     paymentRequest(model.PaymentManual, func(r *model.RecordPaymentRequest) { r.CustomLabel = "Infaq" }),
			wantErr: nil,
		},
		{
			name:    "installment within stages",
			req:     paymentRequest(model.PaymentPembangunan2, nil),
			wantErr: nil,
		},
		{
			name:    "installment beyond stages",
			req:     paymentRequest(model.PaymentPembangunan3, nil),
			wantErr: ErrStageNotConfigured,
		},
		{
			name:    "enabled optional fee",
			req:     paymentRequest(model.PaymentCatering, nil),
			wantErr: nil,
		},
		{
			name:    "disabled optional fee",
			req:     paymentRequest(model.PaymentSeragam, nil),
			wantErr: ErrFeeDisabled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePayment(tt.req, sched)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validatePayment() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPaymentLabel(t *testing.T) {
	month := 1
	tests := []struct {
		name string
		req  *model.RecordPaymentRequest
		want string
	}{
		{
			name: "spp includes month",
			req:  paymentRequest(model.PaymentSPP, func(r *model.RecordPaymentRequest) { r.Month = &month }),
			want: "SPP Jan",
		},
		{
			name: "manual uses custom label",
			req:  paymentRequest(model.PaymentManual, func(r *model.RecordPaymentRequest) { r.CustomLabel = "Infaq Ramadhan" }),
			want: "Infaq Ramadhan",
		},
		{
			name: "fee type is its own label",
			req:  paymentRequest(model.PaymentPembangunan1, nil),
			want: "Pembangunan 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := paymentLabel(tt.req); got != tt.want {
				t.Errorf("paymentLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}
