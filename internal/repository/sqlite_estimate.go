package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mhollis/lath/internal/db"
	"github.com/mhollis/lath/internal/domain"
)

const estimateLineColumns = `id, project_id, category, name, description, amount_cents, position, created_at`

// SQLiteEstimateLineRepo implements EstimateLineRepo using a SQLite database.
type SQLiteEstimateLineRepo struct {
	db db.DBTX
}

// NewSQLiteEstimateLineRepo creates a new SQLiteEstimateLineRepo.
func NewSQLiteEstimateLineRepo(dbtx db.DBTX) *SQLiteEstimateLineRepo {
	return &SQLiteEstimateLineRepo{db: dbtx}
}

func (r *SQLiteEstimateLineRepo) Create(ctx context.Context, line *domain.EstimateLineItem) error {
	query := `INSERT INTO estimate_lines (` + estimateLineColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		line.ID,
		line.ProjectID,
		line.Category,
		line.Name,
		line.Description,
		line.AmountCents,
		line.Position,
		line.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting estimate line: %w", err)
	}
	return nil
}

func (r *SQLiteEstimateLineRepo) ListByProject(ctx context.Context, projectID string) ([]domain.EstimateLineItem, error) {
	query := `SELECT ` + estimateLineColumns + ` FROM estimate_lines WHERE project_id = ? ORDER BY position, created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing estimate lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.EstimateLineItem
	for rows.Next() {
		var line domain.EstimateLineItem
		var createdAt string
		if err := rows.Scan(&line.ID, &line.ProjectID, &line.Category, &line.Name,
			&line.Description, &line.AmountCents, &line.Position, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning estimate line: %w", err)
		}
		if line.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating estimate lines: %w", err)
	}
	return lines, nil
}

func (r *SQLiteEstimateLineRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM estimate_lines WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting estimate line: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("deleting estimate line %s: %w", id, ErrLineItemNotFound)
	}
	return nil
}
