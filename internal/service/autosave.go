package service

import (
	"sync"
	"time"
)

// AutoSaver debounces schedule persistence. Each edit re-arms a per-project
// timer; the save callback fires only after the quiet period passes with no
// further edits, so a burst of changes costs one write.
type AutoSaver struct {
	quiet time.Duration
	save  func(projectID string)

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewAutoSaver(quiet time.Duration, save func(projectID string)) *AutoSaver {
	return &AutoSaver{
		quiet:  quiet,
		save:   save,
		timers: make(map[string]*time.Timer),
	}
}

// Arm starts (or restarts) the quiet-period countdown for a project.
func (a *AutoSaver) Arm(projectID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if t, ok := a.timers[projectID]; ok {
		t.Stop()
	}
	a.timers[projectID] = time.AfterFunc(a.quiet, func() {
		a.mu.Lock()
		delete(a.timers, projectID)
		a.mu.Unlock()
		a.save(projectID)
	})
}

// Cancel drops any pending save for a project. Used when the caller has
// just saved explicitly.
func (a *AutoSaver) Cancel(projectID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if t, ok := a.timers[projectID]; ok {
		t.Stop()
		delete(a.timers, projectID)
	}
}

// Flush fires every pending save immediately.
func (a *AutoSaver) Flush() {
	a.mu.Lock()
	pending := make([]string, 0, len(a.timers))
	for id, t := range a.timers {
		if t.Stop() {
			pending = append(pending, id)
		}
		delete(a.timers, id)
	}
	a.mu.Unlock()

	for _, id := range pending {
		a.save(id)
	}
}

// Stop cancels all pending saves without firing them.
func (a *AutoSaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for id, t := range a.timers {
		t.Stop()
		delete(a.timers, id)
	}
}
