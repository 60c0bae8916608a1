package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sppku/sppku-backend/internal/config"
	"github.com/sppku/sppku-backend/internal/repository"
)

// Aggregates change at the pace of manual data entry, so a short cache
// keeps dashboard polling off the database.
const dashboardCacheTTL = 60 * time.Second

// SeriesPoint is one month of the financial chart.
type SeriesPoint struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Label     string `json:"label"`
	Tagihan   int64  `json:"tagihan"`
	Terkumpul int64  `json:"terkumpul"`
	Tunggakan int64  `json:"tunggakan"`
}

// DashboardData consolidates the KPI cards and the chart series.
type DashboardData struct {
	StudentCount    int     `json:"student_count"`
	MonthlyBilled   int64   `json:"monthly_billed"`
	Collected       int64   `json:"collected"`
	Outstanding     int64   `json:"outstanding"`
	CollectionRatio float64 `json:"collection_ratio"`
	PaidCount       int     `json:"paid_count"`
	FeeCollected    int64   `json:"fee_collected"`
	Series          []SeriesPoint `json:"series"`
}

// DashboardService computes the financial overview for the current month
// plus a trailing six-month series.
type DashboardService struct {
	dashboardRepo *repository.DashboardRepository
	rdb           *redis.Client
	log           zerolog.Logger
	// now is swappable for tests.
	now func() time.Time
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(dashboardRepo *repository.DashboardRepository, rdb *redis.Client, log zerolog.Logger) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		rdb:           rdb,
		log:           log.With().Str("component", "dashboard_service").Logger(),
		now:           time.Now,
	}
}

// GetOverview returns the dashboard figures for the year, served from the
// Redis cache when fresh.
func (s *DashboardService) GetOverview(ctx context.Context, year int) (*DashboardData, error) {
	cacheKey := config.CacheKey.DashboardSummaryKey(year)
	if raw, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
		data := &DashboardData{}
		if err := json.Unmarshal([]byte(raw), data); err == nil {
			return data, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("dashboard cache read failed")
	}

	data, err := s.compute(ctx, year)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(data); err == nil {
		if err := s.rdb.Set(ctx, cacheKey, raw, dashboardCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("dashboard cache write failed")
		}
	}
	return data, nil
}

// Invalidate drops the cached overview, forcing a recompute on next read.
func (s *DashboardService) Invalidate(ctx context.Context, year int) {
	if err := s.rdb.Del(ctx, config.CacheKey.DashboardSummaryKey(year)).Err(); err != nil {
		s.log.Warn().Err(err).Msg("dashboard cache invalidation failed")
	}
}

func (s *DashboardService) compute(ctx context.Context, year int) (*DashboardData, error) {
	roster, err := s.dashboardRepo.GetRosterAggregate(ctx)
	if err != nil {
		return nil, err
	}
	feeCollected, err := s.dashboardRepo.GetFeeCollected(ctx)
	if err != nil {
		return nil, err
	}

	// The series may straddle a year boundary, so both years' aggregates
	// can be needed.
	byYear := map[int]map[int]repository.MonthAggregate{}
	monthsFor := func(y int) (map[int]repository.MonthAggregate, error) {
		if agg, ok := byYear[y]; ok {
			return agg, nil
		}
		agg, err := s.dashboardRepo.GetMonthAggregates(ctx, y)
		if err != nil {
			return nil, err
		}
		byYear[y] = agg
		return agg, nil
	}

	now := s.now()
	current := time.Date(year, now.Month(), 1, 0, 0, 0, 0, time.Local)

	data := &DashboardData{
		StudentCount:  roster.StudentCount,
		MonthlyBilled: roster.MonthlyBilled,
		FeeCollected:  feeCollected,
		Series:        make([]SeriesPoint, 0, 6),
	}

	for offset := 5; offset >= 0; offset-- {
		point := current.AddDate(0, -offset, 0)
		aggregates, err := monthsFor(point.Year())
		if err != nil {
			return nil, err
		}
		agg := aggregates[int(point.Month())]

		tunggakan := roster.MonthlyBilled - agg.Collected
		if tunggakan < 0 {
			tunggakan = 0
		}
		data.Series = append(data.Series, SeriesPoint{
			Year:      point.Year(),
			Month:     int(point.Month()),
			Label:     monthLabels[int(point.Month())-1],
			Tagihan:   roster.MonthlyBilled,
			Terkumpul: agg.Collected,
			Tunggakan: tunggakan,
		})

		if offset == 0 {
			data.Collected = agg.Collected
			data.PaidCount = agg.PaidCount
			data.Outstanding = tunggakan
			if roster.MonthlyBilled > 0 {
				data.CollectionRatio = float64(agg.Collected) / float64(roster.MonthlyBilled)
			}
		}
	}

	return data, nil
}
