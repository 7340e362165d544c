package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mhollis/lath/internal/db"
	"github.com/mhollis/lath/internal/domain"
)

const scheduleItemColumns = `id, project_id, seq, name, description, category,
		start_date, duration_days, end_date, predecessor_id, status, percent_complete`

// SQLiteScheduleStore implements ScheduleStore using a SQLite database.
// Save rewrites the schedule row and all of its items inside one
// transaction, replacing whatever was stored before.
type SQLiteScheduleStore struct {
	db  *sql.DB
	uow db.UnitOfWork
}

// NewSQLiteScheduleStore creates a new SQLiteScheduleStore.
func NewSQLiteScheduleStore(database *sql.DB) *SQLiteScheduleStore {
	return NewSQLiteScheduleStoreWithUoW(database, db.NewSQLiteUnitOfWork(database))
}

// NewSQLiteScheduleStoreWithUoW creates a store with an explicit UnitOfWork.
func NewSQLiteScheduleStoreWithUoW(database *sql.DB, uow db.UnitOfWork) *SQLiteScheduleStore {
	return &SQLiteScheduleStore{db: database, uow: uow}
}

func (s *SQLiteScheduleStore) Get(ctx context.Context, projectID string) (*domain.ProjectSchedule, error) {
	sched := &domain.ProjectSchedule{ProjectID: projectID}

	var startDate string
	var endDate sql.NullString
	var updatedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT start_date, end_date, duration_days, percent_complete, updated_at
		 FROM schedules WHERE project_id = ?`, projectID,
	).Scan(&startDate, &endDate, &sched.DurationDays, &sched.PercentComplete, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("loading schedule for project %s: %w", projectID, ErrScheduleNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading schedule: %w", err)
	}

	if sched.StartDate, err = parseDate(startDate); err != nil {
		return nil, err
	}
	sched.EndDate = parseNullableDate(endDate)
	if sched.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+scheduleItemColumns+` FROM schedule_items WHERE project_id = ? ORDER BY seq`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing schedule items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanScheduleItem(rows)
		if err != nil {
			return nil, err
		}
		sched.Items = append(sched.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedule items: %w", err)
	}
	return sched, nil
}

func (s *SQLiteScheduleStore) Save(ctx context.Context, sched *domain.ProjectSchedule) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO schedules (project_id, start_date, end_date, duration_days, percent_complete, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)
			 ON CONFLICT(project_id) DO UPDATE SET
				start_date = excluded.start_date,
				end_date = excluded.end_date,
				duration_days = excluded.duration_days,
				percent_complete = excluded.percent_complete,
				updated_at = excluded.updated_at`,
			sched.ProjectID,
			sched.StartDate.Format(dateLayout),
			nullableDateToValue(sched.EndDate),
			sched.DurationDays,
			sched.PercentComplete,
			sched.UpdatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("upserting schedule: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM schedule_items WHERE project_id = ?`, sched.ProjectID); err != nil {
			return fmt.Errorf("clearing schedule items: %w", err)
		}

		for i := range sched.Items {
			item := &sched.Items[i]
			_, err := tx.ExecContext(ctx,
				`INSERT INTO schedule_items (`+scheduleItemColumns+`)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				item.ID,
				sched.ProjectID,
				item.Seq,
				item.Name,
				item.Description,
				item.Category,
				item.StartDate.Format(dateLayout),
				item.DurationDays,
				item.EndDate.Format(dateLayout),
				nullableStrToValue(item.PredecessorID),
				string(item.Status),
				item.PercentComplete,
			)
			if err != nil {
				return fmt.Errorf("inserting schedule item %s: %w", item.ID, err)
			}
		}
		return nil
	})
}

func (s *SQLiteScheduleStore) Delete(ctx context.Context, projectID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM schedules WHERE project_id = ?`, projectID)
	if err != nil {
		return fmt.Errorf("deleting schedule: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("deleting schedule for project %s: %w", projectID, ErrScheduleNotFound)
	}
	return nil
}

func scanScheduleItem(row scanner) (domain.ScheduleItem, error) {
	var item domain.ScheduleItem
	var startDate, endDate, status string
	var predecessorID sql.NullString
	err := row.Scan(&item.ID, &item.ProjectID, &item.Seq, &item.Name, &item.Description,
		&item.Category, &startDate, &item.DurationDays, &endDate, &predecessorID,
		&status, &item.PercentComplete)
	if err != nil {
		return domain.ScheduleItem{}, fmt.Errorf("scanning schedule item: %w", err)
	}
	item.Status = domain.ItemStatus(status)
	item.PredecessorID = nullableStr(predecessorID)
	if item.StartDate, err = parseDate(startDate); err != nil {
		return domain.ScheduleItem{}, err
	}
	if item.EndDate, err = parseDate(endDate); err != nil {
		return domain.ScheduleItem{}, err
	}
	return item, nil
}
