package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oguzk/acadrecord/internal/app/models"
	"github.com/oguzk/acadrecord/internal/pkg/apperrors"
)

// BatchRepository handles database operations for admission batches
type BatchRepository struct {
	db *pgxpool.Pool
}

// NewBatchRepository creates a new batch repository
func NewBatchRepository(db *pgxpool.Pool) *BatchRepository {
	return &BatchRepository{db: db}
}

// Ensure creates the batch if its code is absent and returns the row
// id either way. Creation is a single atomic statement, so two uploads
// racing on the same code both land on the surviving row.
func (r *BatchRepository) Ensure(ctx context.Context, batch *models.Batch) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO batches (code, department, year, section)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (code) DO NOTHING
		RETURNING id
	`, batch.Code, batch.Department, batch.Year, batch.Section).Scan(&id)

	if err == nil {
		batch.ID = id
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("error creating batch: %w", err)
	}

	// Conflict path: the row already existed.
	err = r.db.QueryRow(ctx, `SELECT id FROM batches WHERE code = $1`, batch.Code).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error retrieving batch: %w", err)
	}
	batch.ID = id
	return id, nil
}

// GetByCode retrieves a batch by code
func (r *BatchRepository) GetByCode(ctx context.Context, code string) (*models.Batch, error) {
	var batch models.Batch
	err := r.db.QueryRow(ctx, `
		SELECT id, code, department, year, section FROM batches WHERE code = $1
	`, code).Scan(&batch.ID, &batch.Code, &batch.Department, &batch.Year, &batch.Section)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBatchNotFound
		}
		return nil, fmt.Errorf("error retrieving batch: %w", err)
	}

	return &batch, nil
}

// GetAll retrieves all batches
func (r *BatchRepository) GetAll(ctx context.Context) ([]*models.Batch, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, code, department, year, section FROM batches ORDER BY code
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []*models.Batch
	for rows.Next() {
		var batch models.Batch
		if err := rows.Scan(&batch.ID, &batch.Code, &batch.Department, &batch.Year, &batch.Section); err != nil {
			return nil, err
		}
		batches = append(batches, &batch)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return batches, nil
}
