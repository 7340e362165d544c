package repository

import (
	"context"

	"github.com/mhollis/lath/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// EstimateLineRepo supplies estimate line items. Schedule generation
// consumes ListByProject once, in stored order, as its seed sequence.
type EstimateLineRepo interface {
	Create(ctx context.Context, line *domain.EstimateLineItem) error
	ListByProject(ctx context.Context, projectID string) ([]domain.EstimateLineItem, error)
	Delete(ctx context.Context, id string) error
}

// ScheduleStore persists whole schedules. Save replaces any prior value for
// the project atomically; there is no partial-update path and no version
// check, so the last writer wins outright.
type ScheduleStore interface {
	Get(ctx context.Context, projectID string) (*domain.ProjectSchedule, error)
	Save(ctx context.Context, sched *domain.ProjectSchedule) error
	Delete(ctx context.Context, projectID string) error
}
