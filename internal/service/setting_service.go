package service

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/sppku/sppku-backend/internal/model"
	"github.com/sppku/sppku-backend/internal/repository"
)

// SettingService manages institution settings, in particular the fee
// schedule that shapes the recap grid and the payment form.
type SettingService struct {
	settingRepo *repository.SettingRepository
	log         zerolog.Logger
}

// NewSettingService creates a new SettingService.
func NewSettingService(settingRepo *repository.SettingRepository, log zerolog.Logger) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
		log:         log.With().Str("component", "setting_service").Logger(),
	}
}

// GetFeeSchedule loads the fee schedule from the settings table. Missing or
// unreadable keys fall back to the defaults, so a fresh database works
// without any seeding.
func (s *SettingService) GetFeeSchedule(ctx context.Context) (*model.FeeSchedule, error) {
	settings, err := s.settingRepo.GetAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load settings")
		return nil, err
	}

	sched := model.DefaultFeeSchedule()

	if raw, ok := settings[model.SettingUseNIS]; ok {
		if useNIS, err := strconv.ParseBool(raw); err == nil {
			sched.UseNIS = useNIS
		}
	}
	if raw, ok := settings[model.SettingPembangunanStages]; ok {
		if stages, err := strconv.Atoi(raw); err == nil {
			sched.PembangunanStages = stages
		}
	}
	if raw, ok := settings[model.SettingEnabledFees]; ok {
		var enabled map[model.FeeKind]bool
		if err := json.Unmarshal([]byte(raw), &enabled); err == nil {
			sched.EnabledFees = enabled
		}
	}

	if err := sched.Validate(); err != nil {
		s.log.Warn().Err(err).Msg("stored fee schedule invalid, using defaults")
		sched = model.DefaultFeeSchedule()
	}
	return sched, nil
}

// UpdateFeeSchedule validates and persists a new fee schedule.
func (s *SettingService) UpdateFeeSchedule(ctx context.Context, sched *model.FeeSchedule) error {
	if err := sched.Validate(); err != nil {
		return err
	}

	enabled, err := json.Marshal(sched.EnabledFees)
	if err != nil {
		return err
	}

	pairs := map[string]string{
		model.SettingUseNIS:            strconv.FormatBool(sched.UseNIS),
		model.SettingPembangunanStages: strconv.Itoa(sched.PembangunanStages),
		model.SettingEnabledFees:       string(enabled),
	}
	for key, value := range pairs {
		if err := s.settingRepo.Upsert(ctx, key, value); err != nil {
			s.log.Error().Err(err).Str("key", key).Msg("failed to update setting")
			return err
		}
	}
	return nil
}
