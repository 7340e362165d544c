package service

import (
	"context"
	"sync"
	"time"

	"github.com/mhollis/lath/internal/domain"
	"github.com/mhollis/lath/internal/repository"
	"github.com/mhollis/lath/internal/schedule"
)

// scheduleService keeps the working copy of each project's schedule in
// memory and debounces writes through an AutoSaver. Every mutation
// re-arms the quiet-period timer; an explicit Save persists immediately
// and cancels any pending autosave for that project.
type scheduleService struct {
	projects repository.ProjectRepo
	lines    repository.EstimateLineRepo
	store    repository.ScheduleStore
	obs      UseCaseObserver
	now      func() time.Time

	mu    sync.Mutex
	cache map[string]*domain.ProjectSchedule
	saver *AutoSaver
}

func NewScheduleService(
	projects repository.ProjectRepo,
	lines repository.EstimateLineRepo,
	store repository.ScheduleStore,
	quiet time.Duration,
	observers ...UseCaseObserver,
) ScheduleService {
	s := &scheduleService{
		projects: projects,
		lines:    lines,
		store:    store,
		obs:      useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
		cache:    make(map[string]*domain.ProjectSchedule),
	}
	s.saver = NewAutoSaver(quiet, s.autoSave)
	return s
}

func (s *scheduleService) autoSave(projectID string) {
	ctx := context.Background()
	_ = observe(ctx, s.obs, "schedule.autosave",
		map[string]any{"project_id": projectID},
		func() error { return s.Save(ctx, projectID) })
}

// load returns the cached working copy, reading from the store on first
// access. Callers must hold s.mu.
func (s *scheduleService) load(ctx context.Context, projectID string) (*domain.ProjectSchedule, error) {
	if sched, ok := s.cache[projectID]; ok {
		return sched, nil
	}
	sched, err := s.store.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	s.cache[projectID] = sched
	return sched, nil
}

// snapshot returns a copy safe to hand to callers while the working copy
// keeps changing underneath.
func snapshot(sched *domain.ProjectSchedule) *domain.ProjectSchedule {
	out := *sched
	out.Items = make([]domain.ScheduleItem, len(sched.Items))
	copy(out.Items, sched.Items)
	return &out
}

func (s *scheduleService) Generate(ctx context.Context, projectID string, opts schedule.GenerateOptions) (*domain.ProjectSchedule, error) {
	proj, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	lines, err := s.lines.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if opts.StartDate.IsZero() {
		opts.StartDate = proj.StartDate
	}

	sched := schedule.Build(projectID, lines, opts)
	schedule.Finalize(&sched, s.now())

	if err := s.store.Save(ctx, &sched); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[projectID] = &sched
	s.mu.Unlock()
	s.saver.Cancel(projectID)

	s.obs.ObserveUseCase(ctx, UseCaseEvent{
		Name: "schedule.generate", Success: true,
		Fields: map[string]any{"project_id": projectID, "items": len(sched.Items)},
	})
	return snapshot(&sched), nil
}

func (s *scheduleService) Get(ctx context.Context, projectID string) (*domain.ProjectSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sched, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return snapshot(sched), nil
}

// mutate applies fn to the working copy and arms the autosave timer when
// it succeeds.
func (s *scheduleService) mutate(ctx context.Context, projectID string, fn func(items []domain.ScheduleItem) ([]domain.ScheduleItem, error)) (*domain.ProjectSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sched, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	items, err := fn(sched.Items)
	if err != nil {
		return nil, err
	}
	sched.Items = items
	if len(items) > 0 {
		sched.EndDate = scheduleEnd(items)
	}
	s.saver.Arm(projectID)
	return snapshot(sched), nil
}

// scheduleEnd is the latest item end date. Cascade can push a mid-schedule
// item past the last one, so the maximum is taken over all items.
func scheduleEnd(items []domain.ScheduleItem) time.Time {
	end := items[0].EndDate
	for i := 1; i < len(items); i++ {
		if items[i].EndDate.After(end) {
			end = items[i].EndDate
		}
	}
	return end
}

func (s *scheduleService) UpdateItem(ctx context.Context, projectID, itemID string, patch schedule.ItemPatch) (*domain.ProjectSchedule, error) {
	return s.mutate(ctx, projectID, func(items []domain.ScheduleItem) ([]domain.ScheduleItem, error) {
		return schedule.ApplyPatch(items, itemID, patch)
	})
}

func (s *scheduleService) SetPredecessor(ctx context.Context, projectID, itemID, predecessorID string) (*domain.ProjectSchedule, error) {
	return s.mutate(ctx, projectID, func(items []domain.ScheduleItem) ([]domain.ScheduleItem, error) {
		return schedule.SetPredecessor(items, itemID, predecessorID)
	})
}

func (s *scheduleService) ClearPredecessor(ctx context.Context, projectID, itemID string) (*domain.ProjectSchedule, error) {
	return s.mutate(ctx, projectID, func(items []domain.ScheduleItem) ([]domain.ScheduleItem, error) {
		return schedule.ClearPredecessor(items, itemID)
	})
}

func (s *scheduleService) AutoCalculate(ctx context.Context, projectID string) (*AutoCalcResult, error) {
	var dangling []schedule.DanglingPredecessor
	sched, err := s.mutate(ctx, projectID, func(items []domain.ScheduleItem) ([]domain.ScheduleItem, error) {
		var out []domain.ScheduleItem
		out, dangling = schedule.AutoCalculate(items)
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	s.obs.ObserveUseCase(ctx, UseCaseEvent{
		Name: "schedule.autocalc", Success: true,
		Fields: map[string]any{"project_id": projectID, "dangling": len(dangling)},
	})
	return &AutoCalcResult{Schedule: sched, Dangling: dangling}, nil
}

func (s *scheduleService) Save(ctx context.Context, projectID string) error {
	s.mu.Lock()
	sched, ok := s.cache[projectID]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	schedule.Finalize(sched, s.now())
	toSave := snapshot(sched)
	s.mu.Unlock()

	s.saver.Cancel(projectID)
	return s.store.Save(ctx, toSave)
}

func (s *scheduleService) Delete(ctx context.Context, projectID string) error {
	s.saver.Cancel(projectID)
	s.mu.Lock()
	delete(s.cache, projectID)
	s.mu.Unlock()
	return s.store.Delete(ctx, projectID)
}

// Flush persists every schedule with a pending autosave. Called on
// shutdown so the quiet period never loses edits.
func (s *scheduleService) Flush(ctx context.Context) error {
	s.saver.Flush()
	return nil
}
