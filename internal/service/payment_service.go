package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sppku/sppku-backend/internal/config"
	"github.com/sppku/sppku-backend/internal/model"
	"github.com/sppku/sppku-backend/internal/repository"
)

// Payment validation errors.
var (
	ErrMonthRequired       = errors.New("month is required for SPP payments")
	ErrMonthOutOfRange     = errors.New("month must be between 1 and 12")
	ErrMonthNotAllowed     = errors.New("month only applies to SPP payments")
	ErrCustomLabelRequired = errors.New("custom label is required for manual payments")
	ErrStageNotConfigured  = errors.New("installment stage exceeds the configured schedule")
	ErrFeeDisabled         = errors.New("fee type is disabled in the schedule")
)

// PaymentService validates and applies payment entries, then hands a feed
// notification to the background worker.
type PaymentService struct {
	paymentRepo *repository.PaymentRepository
	studentRepo *repository.StudentRepository
	settingSvc  *SettingService
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	paymentRepo *repository.PaymentRepository,
	studentRepo *repository.StudentRepository,
	settingSvc *SettingService,
	rdb *redis.Client,
	log zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		studentRepo: studentRepo,
		settingSvc:  settingSvc,
		rdb:         rdb,
		log:         log.With().Str("component", "payment_service").Logger(),
	}
}

// RecordPayment validates the request against the fee schedule, applies it
// atomically, and enqueues a success notification. The returned ledger row
// is what was persisted.
func (s *PaymentService) RecordPayment(ctx context.Context, req *model.RecordPaymentRequest, year int, recordedBy string) (*model.Payment, error) {
	sched, err := s.settingSvc.GetFeeSchedule(ctx)
	if err != nil {
		return nil, err
	}
	if err := validatePayment(req, sched); err != nil {
		return nil, err
	}

	paidDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	ledger := &model.Payment{
		StudentID:  req.StudentID,
		Type:       req.Type,
		Label:      paymentLabel(req),
		Month:      req.Month,
		Amount:     req.Amount,
		Method:     req.Method,
		PaidDate:   paidDate,
		Note:       req.Note,
		RecordedBy: recordedBy,
	}

	if req.Type == model.PaymentSPP {
		err = s.paymentRepo.RecordSPP(ctx, ledger, year, *req.Month)
	} else {
		kind, _ := req.Type.FeeKind()
		err = s.paymentRepo.RecordFee(ctx, ledger, kind)
	}
	if err != nil {
		s.log.Error().Err(err).Int("student_id", req.StudentID).Str("type", string(req.Type)).Msg("failed to record payment")
		return nil, err
	}

	s.log.Info().
		Int("student_id", req.StudentID).
		Str("type", string(req.Type)).
		Int64("amount", req.Amount).
		Str("recorded_by", recordedBy).
		Msg("payment recorded")

	s.enqueueNotification(ctx, ledger)
	return ledger, nil
}

// GetHistory returns a student's recent ledger entries.
func (s *PaymentService) GetHistory(ctx context.Context, studentID int) ([]model.Payment, error) {
	return s.paymentRepo.ListByStudent(ctx, studentID, 50)
}

// validatePayment enforces the per-type payload rules and the schedule:
// SPP needs a month, Manual needs a label, an installment must not exceed
// the configured stage count, and optional fee kinds must be enabled.
func validatePayment(req *model.RecordPaymentRequest, sched *model.FeeSchedule) error {
	if req.Type == model.PaymentSPP {
		if req.Month == nil {
			return ErrMonthRequired
		}
		// Binding skips the range check when the pointer holds zero, so the
		// bounds are enforced here.
		if *req.Month < 1 || *req.Month > 12 {
			return ErrMonthOutOfRange
		}
		return nil
	}
	if req.Month != nil {
		return ErrMonthNotAllowed
	}

	if req.Type == model.PaymentManual && req.CustomLabel == "" {
		return ErrCustomLabelRequired
	}

	if stage := req.Type.PembangunanStage(); stage > 0 {
		if stage > sched.PembangunanStages {
			return ErrStageNotConfigured
		}
		return nil
	}

	if req.Type != model.PaymentManual {
		kind, _ := req.Type.FeeKind()
		if !sched.FeeEnabled(kind) {
			return ErrFeeDisabled
		}
	}
	return nil
}

func paymentLabel(req *model.RecordPaymentRequest) string {
	if req.Type == model.PaymentManual {
		return req.CustomLabel
	}
	if req.Type == model.PaymentSPP && req.Month != nil {
		return fmt.Sprintf("SPP %s", monthLabels[*req.Month-1])
	}
	return string(req.Type)
}

// feedEvent is the JSON payload handed to the notification worker.
type feedEvent struct {
	Kind        model.NotificationKind `json:"kind"`
	Title       string                 `json:"title"`
	Message     string                 `json:"message"`
	ActionLabel string                 `json:"action_label,omitempty"`
	ActionURL   string                 `json:"action_url,omitempty"`
}

func (s *PaymentService) enqueueNotification(ctx context.Context, ledger *model.Payment) {
	event := feedEvent{
		Kind:      model.NotifSuccess,
		Title:     "Pembayaran tercatat",
		Message:   fmt.Sprintf("%s sebesar Rp%d untuk siswa #%d berhasil dicatat.", ledger.Label, ledger.Amount, ledger.StudentID),
		ActionURL: fmt.Sprintf("/siswa/%d", ledger.StudentID),
	}
	raw, err := json.Marshal(event)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal feed event")
		return
	}
	// The feed is advisory. A full queue or Redis hiccup must not fail the
	// payment that already committed.
	if err := s.rdb.RPush(ctx, config.WorkerKey.NotificationQueue, raw).Err(); err != nil {
		s.log.Error().Err(err).Msg("failed to enqueue feed event")
	}
}
