package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sppku/sppku-backend/internal/model"
)

var ErrStudentNotFound = errors.New("student not found")

// StudentRepository handles roster data access. A student row is always
// loaded together with its twelve monthly payment slots for the requested
// year and its one-off fee amounts.
type StudentRepository struct {
	pool *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

// GetByID retrieves a single student with payment vector and fees.
func (r *StudentRepository) GetByID(ctx context.Context, id, year int) (*model.Student, error) {
	s := &model.Student{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, nis, name, category, class_name, monthly_fee, created_at, updated_at
		 FROM students WHERE id = $1`, id,
	).Scan(&s.ID, &s.NIS, &s.Name, &s.Category, &s.ClassName, &s.MonthlyFee, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	if err := r.attachPayments(ctx, map[int]*model.Student{s.ID: s}, year); err != nil {
		return nil, err
	}
	if err := r.attachFees(ctx, map[int]*model.Student{s.ID: s}); err != nil {
		return nil, err
	}
	return s, nil
}

// ListRoster retrieves every student ordered by name, with payment vectors
// for the given year and all fee amounts attached.
func (r *StudentRepository) ListRoster(ctx context.Context, year int) ([]model.Student, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, nis, name, category, class_name, monthly_fee, created_at, updated_at
		 FROM students ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.Student
	index := make(map[int]*model.Student)
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.NIS, &s.Name, &s.Category, &s.ClassName, &s.MonthlyFee, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range students {
		index[students[i].ID] = &students[i]
	}

	if err := r.attachPayments(ctx, index, year); err != nil {
		return nil, err
	}
	if err := r.attachFees(ctx, index); err != nil {
		return nil, err
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

// ListClasses retrieves the distinct class names for the filter UI.
func (r *StudentRepository) ListClasses(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT class_name FROM students ORDER BY class_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		classes = append(classes, name)
	}
	return classes, rows.Err()
}

// ExistingNIS returns the set of NIS values already on the roster.
// Used by the import pipeline to flag collisions.
func (r *StudentRepository) ExistingNIS(ctx context.Context) (map[string]bool, error) {
	rows, err := r.pool.Query(ctx, `SELECT nis FROM students WHERE nis <> ''`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := make(map[string]bool)
	for rows.Next() {
		var nis string
		if err := rows.Scan(&nis); err != nil {
			return nil, err
		}
		existing[nis] = true
	}
	return existing, rows.Err()
}

// Create inserts a student, seeds twelve UNPAID monthly slots for the year,
// and stores the initial fee amounts. Runs in one transaction.
func (r *StudentRepository) Create(ctx context.Context, s *model.Student, fees map[model.FeeKind]int64, year int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := createStudentTx(ctx, tx, s, fees, year); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// CreateBatch inserts all given import rows as new students in a single
// transaction. Returns the number of students created. The batch either
// commits fully or not at all.
func (r *StudentRepository) CreateBatch(ctx context.Context, batch []model.ImportRow, year int) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	created := 0
	for _, row := range batch {
		s := &model.Student{
			NIS:        row.NIS,
			Name:       row.Name,
			Category:   row.Category,
			ClassName:  row.ClassName,
			MonthlyFee: row.MonthlyFee,
		}
		if err := createStudentTx(ctx, tx, s, row.Fees, year); err != nil {
			return 0, err
		}
		created++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return created, nil
}

// Update modifies a student's static attributes. Payment slots and fee
// amounts are only touched through payment entry.
func (r *StudentRepository) Update(ctx context.Context, s *model.Student) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE students SET nis = $1, name = $2, category = $3, class_name = $4, monthly_fee = $5, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $6`,
		s.NIS, s.Name, s.Category, s.ClassName, s.MonthlyFee, s.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}
	return nil
}

func createStudentTx(ctx context.Context, tx pgx.Tx, s *model.Student, fees map[model.FeeKind]int64, year int) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO students (nis, name, category, class_name, monthly_fee)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		s.NIS, s.Name, s.Category, s.ClassName, s.MonthlyFee,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return err
	}

	for month := 1; month <= 12; month++ {
		if _, err := tx.Exec(ctx,
			`INSERT INTO monthly_payments (student_id, year, month, status) VALUES ($1, $2, $3, $4)`,
			s.ID, year, month, model.StatusUnpaid,
		); err != nil {
			return err
		}
	}

	for kind, amount := range fees {
		if amount == 0 {
			continue
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO student_fees (student_id, fee_type, amount) VALUES ($1, $2, $3)
			 ON CONFLICT (student_id, fee_type) DO UPDATE SET amount = EXCLUDED.amount`,
			s.ID, kind, amount,
		); err != nil {
			return err
		}
	}
	return nil
}

// attachPayments loads the monthly vectors for every student in the index.
// A student with no rows at all for the year gets a synthesized UNPAID
// vector, since slots are only seeded at creation for the creation-time
// year. A partial vector is left as-is for the recap engine to reject.
func (r *StudentRepository) attachPayments(ctx context.Context, index map[int]*model.Student, year int) error {
	if len(index) == 0 {
		return nil
	}
	ids := make([]int, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT student_id, month, status, amount, paid_date, method, recorded_by
		 FROM monthly_payments
		 WHERE year = $1 AND student_id = ANY($2)
		 ORDER BY student_id, month`,
		year, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			studentID int
			p         model.MonthlyPayment
			method    *string
			recorded  *string
		)
		if err := rows.Scan(&studentID, &p.Month, &p.Status, &p.Amount, &p.PaidDate, &method, &recorded); err != nil {
			return err
		}
		if method != nil {
			p.Method = model.PaymentMethod(*method)
		}
		if recorded != nil {
			p.RecordedBy = *recorded
		}
		if s, ok := index[studentID]; ok {
			s.MonthlyPayments = append(s.MonthlyPayments, p)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, s := range index {
		if len(s.MonthlyPayments) == 0 {
			s.MonthlyPayments = model.EmptyMonthlyVector()
		}
	}
	return nil
}

func (r *StudentRepository) attachFees(ctx context.Context, index map[int]*model.Student) error {
	if len(index) == 0 {
		return nil
	}
	ids := make([]int, 0, len(index))
	for id := range index {
		ids = append(ids, id)
		index[id].Fees = map[model.FeeKind]int64{}
	}

	rows, err := r.pool.Query(ctx,
		`SELECT student_id, fee_type, amount FROM student_fees WHERE student_id = ANY($1)`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			studentID int
			kind      model.FeeKind
			amount    int64
		)
		if err := rows.Scan(&studentID, &kind, &amount); err != nil {
			return err
		}
		if s, ok := index[studentID]; ok {
			s.Fees[kind] = amount
		}
	}
	return rows.Err()
}
