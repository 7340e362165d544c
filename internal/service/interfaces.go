package service

import (
	"context"

	"github.com/mhollis/lath/internal/domain"
	"github.com/mhollis/lath/internal/schedule"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type EstimateService interface {
	AddLine(ctx context.Context, line *domain.EstimateLineItem) error
	ListByProject(ctx context.Context, projectID string) ([]domain.EstimateLineItem, error)
	RemoveLine(ctx context.Context, id string) error
}

// AutoCalcResult carries the recalculated schedule along with any items
// whose predecessor no longer exists.
type AutoCalcResult struct {
	Schedule *domain.ProjectSchedule
	Dangling []schedule.DanglingPredecessor
}

type ScheduleService interface {
	Generate(ctx context.Context, projectID string, opts schedule.GenerateOptions) (*domain.ProjectSchedule, error)
	Get(ctx context.Context, projectID string) (*domain.ProjectSchedule, error)
	UpdateItem(ctx context.Context, projectID, itemID string, patch schedule.ItemPatch) (*domain.ProjectSchedule, error)
	SetPredecessor(ctx context.Context, projectID, itemID, predecessorID string) (*domain.ProjectSchedule, error)
	ClearPredecessor(ctx context.Context, projectID, itemID string) (*domain.ProjectSchedule, error)
	AutoCalculate(ctx context.Context, projectID string) (*AutoCalcResult, error)
	Save(ctx context.Context, projectID string) error
	Delete(ctx context.Context, projectID string) error
	Flush(ctx context.Context) error
}
