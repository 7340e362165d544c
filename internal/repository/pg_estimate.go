package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mhollis/lath/internal/domain"
)

// PgEstimateLineRepo implements EstimateLineRepo against a hosted Postgres
// backend.
type PgEstimateLineRepo struct {
	pool *pgxpool.Pool
}

// NewPgEstimateLineRepo creates a new PgEstimateLineRepo.
func NewPgEstimateLineRepo(pool *pgxpool.Pool) *PgEstimateLineRepo {
	return &PgEstimateLineRepo{pool: pool}
}

func (r *PgEstimateLineRepo) Create(ctx context.Context, line *domain.EstimateLineItem) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO estimate_lines (id, project_id, category, name, description, amount_cents, position, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		line.ID, line.ProjectID, line.Category, line.Name, line.Description,
		line.AmountCents, line.Position, line.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting estimate line: %w", err)
	}
	return nil
}

func (r *PgEstimateLineRepo) ListByProject(ctx context.Context, projectID string) ([]domain.EstimateLineItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, project_id, category, name, description, amount_cents, position, created_at
		 FROM estimate_lines WHERE project_id = $1 ORDER BY position, created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing estimate lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.EstimateLineItem
	for rows.Next() {
		var line domain.EstimateLineItem
		if err := rows.Scan(&line.ID, &line.ProjectID, &line.Category, &line.Name,
			&line.Description, &line.AmountCents, &line.Position, &line.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning estimate line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating estimate lines: %w", err)
	}
	return lines, nil
}

func (r *PgEstimateLineRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM estimate_lines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting estimate line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting estimate line %s: %w", id, ErrLineItemNotFound)
	}
	return nil
}
