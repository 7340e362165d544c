package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mhollis/lath/internal/domain"
)

// PgScheduleStore implements ScheduleStore against a hosted Postgres
// backend. Save replaces the schedule wholesale inside one transaction,
// matching the sqlite store's last-writer-wins semantics.
type PgScheduleStore struct {
	pool *pgxpool.Pool
}

// NewPgScheduleStore creates a new PgScheduleStore.
func NewPgScheduleStore(pool *pgxpool.Pool) *PgScheduleStore {
	return &PgScheduleStore{pool: pool}
}

func (s *PgScheduleStore) Get(ctx context.Context, projectID string) (*domain.ProjectSchedule, error) {
	sched := &domain.ProjectSchedule{ProjectID: projectID}

	var endDate *time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT start_date, end_date, duration_days, percent_complete, updated_at
		 FROM schedules WHERE project_id = $1`, projectID,
	).Scan(&sched.StartDate, &endDate, &sched.DurationDays, &sched.PercentComplete, &sched.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("loading schedule for project %s: %w", projectID, ErrScheduleNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading schedule: %w", err)
	}
	if endDate != nil {
		sched.EndDate = *endDate
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, project_id, seq, name, description, category, start_date,
			duration_days, end_date, predecessor_id, status, percent_complete
		 FROM schedule_items WHERE project_id = $1 ORDER BY seq`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing schedule items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.ScheduleItem
		var status string
		if err := rows.Scan(&item.ID, &item.ProjectID, &item.Seq, &item.Name,
			&item.Description, &item.Category, &item.StartDate, &item.DurationDays,
			&item.EndDate, &item.PredecessorID, &status, &item.PercentComplete); err != nil {
			return nil, fmt.Errorf("scanning schedule item: %w", err)
		}
		item.Status = domain.ItemStatus(status)
		sched.Items = append(sched.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedule items: %w", err)
	}
	return sched, nil
}

func (s *PgScheduleStore) Save(ctx context.Context, sched *domain.ProjectSchedule) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var endDate any
	if !sched.EndDate.IsZero() {
		endDate = sched.EndDate
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO schedules (project_id, start_date, end_date, duration_days, percent_complete, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (project_id) DO UPDATE SET
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			duration_days = EXCLUDED.duration_days,
			percent_complete = EXCLUDED.percent_complete,
			updated_at = EXCLUDED.updated_at`,
		sched.ProjectID, sched.StartDate, endDate, sched.DurationDays,
		sched.PercentComplete, sched.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting schedule: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM schedule_items WHERE project_id = $1`, sched.ProjectID); err != nil {
		return fmt.Errorf("clearing schedule items: %w", err)
	}

	for i := range sched.Items {
		item := &sched.Items[i]
		_, err := tx.Exec(ctx,
			`INSERT INTO schedule_items (id, project_id, seq, name, description, category,
				start_date, duration_days, end_date, predecessor_id, status, percent_complete)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			item.ID, sched.ProjectID, item.Seq, item.Name, item.Description, item.Category,
			item.StartDate, item.DurationDays, item.EndDate, item.PredecessorID,
			string(item.Status), item.PercentComplete)
		if err != nil {
			return fmt.Errorf("inserting schedule item %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func (s *PgScheduleStore) Delete(ctx context.Context, projectID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM schedules WHERE project_id = $1`, projectID)
	if err != nil {
		return fmt.Errorf("deleting schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting schedule for project %s: %w", projectID, ErrScheduleNotFound)
	}
	return nil
}
