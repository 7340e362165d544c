package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mhollis/lath/internal/domain"
)

// PgProjectRepo implements ProjectRepo against a hosted Postgres backend.
type PgProjectRepo struct {
	pool *pgxpool.Pool
}

// NewPgProjectRepo creates a new PgProjectRepo.
func NewPgProjectRepo(pool *pgxpool.Pool) *PgProjectRepo {
	return &PgProjectRepo{pool: pool}
}

func (r *PgProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO projects (id, short_id, name, client, address, start_date, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.ShortID, p.Name, p.Client, p.Address, p.StartDate, string(p.Status), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *PgProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, short_id, name, client, address, start_date, status, created_at, updated_at
		 FROM projects WHERE id = $1`, id)
	return scanPgProject(row)
}

func (r *PgProjectRepo) GetByShortID(ctx context.Context, shortID string) (*domain.Project, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, short_id, name, client, address, start_date, status, created_at, updated_at
		 FROM projects WHERE UPPER(short_id) = UPPER($1)`, shortID)
	return scanPgProject(row)
}

func (r *PgProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, short_id, name, client, address, start_date, status, created_at, updated_at
		 FROM projects ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanPgProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *PgProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects SET short_id = $1, name = $2, client = $3, address = $4,
			start_date = $5, status = $6, updated_at = $7 WHERE id = $8`,
		p.ShortID, p.Name, p.Client, p.Address, p.StartDate, string(p.Status), p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("updating project %s: %w", p.ID, ErrProjectNotFound)
	}
	return nil
}

func (r *PgProjectRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting project %s: %w", id, ErrProjectNotFound)
	}
	return nil
}

func scanPgProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	var status string
	err := row.Scan(&p.ID, &p.ShortID, &p.Name, &p.Client, &p.Address,
		&p.StartDate, &status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	p.Status = domain.ProjectStatus(status)
	return &p, nil
}
