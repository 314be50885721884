package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzk/acadrecord/internal/app/models"
)

// FeeRepository handles database operations for fee payments
type FeeRepository struct {
	db *pgxpool.Pool
}

// NewFeeRepository creates a new fee repository
func NewFeeRepository(db *pgxpool.Pool) *FeeRepository {
	return &FeeRepository{db: db}
}

// Create appends a fee ledger entry
func (r *FeeRepository) Create(ctx context.Context, fee *models.FeePayment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO fee_payments (student_id, amount, due_date, paid_date, status, due_months)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, fee.StudentID, fee.Amount, fee.DueDate, fee.PaidDate, fee.Status, fee.DueMonths).Scan(&fee.ID)
	if err != nil {
		return fmt.Errorf("error creating fee payment: %w", err)
	}
	return nil
}

// ListByStudent retrieves all fee entries for a student, newest due
// date first.
func (r *FeeRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.FeePayment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, amount, due_date, paid_date, status, due_months
		FROM fee_payments
		WHERE student_id = $1
		ORDER BY due_date DESC, id DESC
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fees []*models.FeePayment
	for rows.Next() {
		var f models.FeePayment
		if err := rows.Scan(&f.ID, &f.StudentID, &f.Amount, &f.DueDate, &f.PaidDate, &f.Status, &f.DueMonths); err != nil {
			return nil, err
		}
		fees = append(fees, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return fees, nil
}
