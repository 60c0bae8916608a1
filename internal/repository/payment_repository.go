package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sppku/sppku-backend/internal/model"
)

// PaymentRepository applies payment entries. Every application writes both
// the roster-side state (monthly slot or fee amount) and an immutable ledger
// row in the same transaction.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

const markSlotPaidSQL = `UPDATE monthly_payments
	 SET status = $1, amount = $2, paid_date = $3, method = $4, recorded_by = $5
	 WHERE student_id = $6 AND year = $7 AND month = $8`

// RecordSPP marks one monthly slot PAID for the ledger's student and year,
// storing the recorded amount, date, method and operator on the slot. Slots
// for a year the student has no rows in yet are seeded UNPAID first, since
// creation only seeds the creation-time year.
func (r *PaymentRepository) RecordSPP(ctx context.Context, p *model.Payment, year, month int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, markSlotPaidSQL,
		model.StatusPaid, p.Amount, p.PaidDate, p.Method, p.RecordedBy, p.StudentID, year, month,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if err := seedYearTx(ctx, tx, p.StudentID, year); err != nil {
			return err
		}
		tag, err = tx.Exec(ctx, markSlotPaidSQL,
			model.StatusPaid, p.Amount, p.PaidDate, p.Method, p.RecordedBy, p.StudentID, year, month,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrStudentNotFound
		}
	}

	if err := insertLedgerTx(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// seedYearTx inserts the twelve UNPAID slots of one year for an existing
// student. A no-op when the student is missing or the slots already exist.
func seedYearTx(ctx context.Context, tx pgx.Tx, studentID, year int) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO monthly_payments (student_id, year, month, status)
		 SELECT s.id, $2, m, $3
		 FROM students s, generate_series(1, 12) AS m
		 WHERE s.id = $1
		 ON CONFLICT (student_id, year, month) DO NOTHING`,
		studentID, year, model.StatusUnpaid,
	)
	return err
}

// RecordFee upserts a one-off fee amount for the student and appends the
// ledger row. Recording the same fee kind twice overwrites the amount, the
// ledger keeps both entries.
func (r *PaymentRepository) RecordFee(ctx context.Context, p *model.Payment, kind model.FeeKind) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO student_fees (student_id, fee_type, amount)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (student_id, fee_type) DO UPDATE SET amount = EXCLUDED.amount`,
		p.StudentID, kind, p.Amount,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrStudentNotFound
		}
		return err
	}

	if err := insertLedgerTx(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ListByStudent retrieves the ledger entries of one student, newest first.
func (r *PaymentRepository) ListByStudent(ctx context.Context, studentID, limit int) ([]model.Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, type, label, amount, method, paid_date, month, note, recorded_by, created_at
		 FROM payments WHERE student_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		studentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []model.Payment{}
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.StudentID, &p.Type, &p.Label, &p.Amount, &p.Method,
			&p.PaidDate, &p.Month, &p.Note, &p.RecordedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func insertLedgerTx(ctx context.Context, tx pgx.Tx, p *model.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	err := tx.QueryRow(ctx,
		`INSERT INTO payments (id, student_id, type, label, amount, method, paid_date, month, note, recorded_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at`,
		p.ID, p.StudentID, p.Type, p.Label, p.Amount, p.Method, p.PaidDate, p.Month, p.Note, p.RecordedBy,
	).Scan(&p.CreatedAt)
	if isForeignKeyViolation(err) {
		return ErrStudentNotFound
	}
	return err
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
