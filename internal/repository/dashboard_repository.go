package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MonthAggregate is one month's roll-up of the monthly payment slots.
type MonthAggregate struct {
	Month     int
	PaidCount int
	Collected int64
}

// RosterAggregate is the roster-wide figures the KPI cards build on.
type RosterAggregate struct {
	StudentCount  int
	MonthlyBilled int64
}

// DashboardRepository computes the aggregates behind the dashboard KPIs.
// Aggregation happens in SQL so the dashboard never loads the full roster.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetRosterAggregate returns the student count and the sum of monthly fees,
// which is the amount billed across the roster in any single month.
func (r *DashboardRepository) GetRosterAggregate(ctx context.Context) (*RosterAggregate, error) {
	agg := &RosterAggregate{}
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(monthly_fee), 0) FROM students`,
	).Scan(&agg.StudentCount, &agg.MonthlyBilled)
	if err != nil {
		return nil, err
	}
	return agg, nil
}

// GetMonthAggregates returns per-month paid counts and collected amounts for
// the year. Months with no PAID slots are absent from the result.
func (r *DashboardRepository) GetMonthAggregates(ctx context.Context, year int) (map[int]MonthAggregate, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT month, COUNT(*), COALESCE(SUM(amount), 0)
		 FROM monthly_payments
		 WHERE year = $1 AND status = 'PAID'
		 GROUP BY month`,
		year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	aggregates := make(map[int]MonthAggregate)
	for rows.Next() {
		var agg MonthAggregate
		if err := rows.Scan(&agg.Month, &agg.PaidCount, &agg.Collected); err != nil {
			return nil, err
		}
		aggregates[agg.Month] = agg
	}
	return aggregates, rows.Err()
}

// GetFeeCollected returns the total amount recorded in the fee buckets.
func (r *DashboardRepository) GetFeeCollected(ctx context.Context) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM student_fees`,
	).Scan(&total)
	return total, err
}
