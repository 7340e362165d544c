package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/mhollis/lath/internal/domain"
)

var testShortIDCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithShortID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ShortID = id
	}
}

func WithProjectStart(d time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = d
	}
}

func WithClient(c string) ProjectOption {
	return func(p *domain.Project) {
		p.Client = c
	}
}

func defaultShortID(name string) string {
	upper := strings.ToUpper(name)
	var letters []byte
	for i := 0; i < len(upper) && len(letters) < 3; i++ {
		if upper[i] >= 'A' && upper[i] <= 'Z' {
			letters = append(letters, upper[i])
		}
	}
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	n := testShortIDCounter.Add(1)
	return fmt.Sprintf("%s%02d", string(letters), n)
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		ShortID:   defaultShortID(name),
		Name:      name,
		StartDate: now.Truncate(24 * time.Hour),
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Estimate line options
type LineOption func(*domain.EstimateLineItem)

func WithAmountCents(c int64) LineOption {
	return func(l *domain.EstimateLineItem) {
		l.AmountCents = c
	}
}

func WithPosition(pos int) LineOption {
	return func(l *domain.EstimateLineItem) {
		l.Position = pos
	}
}

func WithLineDescription(d string) LineOption {
	return func(l *domain.EstimateLineItem) {
		l.Description = d
	}
}

func NewTestLineItem(projectID, category, name string, opts ...LineOption) *domain.EstimateLineItem {
	l := &domain.EstimateLineItem{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Category:  category,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Schedule item options
type ScheduleItemOption func(*domain.ScheduleItem)

func WithDuration(days int) ScheduleItemOption {
	return func(it *domain.ScheduleItem) {
		it.DurationDays = days
		it.EndDate = it.ComputeEnd()
	}
}

func WithStart(d time.Time) ScheduleItemOption {
	return func(it *domain.ScheduleItem) {
		it.StartDate = d
		it.EndDate = it.ComputeEnd()
	}
}

func WithPredecessor(id string) ScheduleItemOption {
	return func(it *domain.ScheduleItem) {
		it.PredecessorID = &id
	}
}

func WithItemStatus(s domain.ItemStatus) ScheduleItemOption {
	return func(it *domain.ScheduleItem) {
		it.Status = s
	}
}

func WithPercentComplete(p int) ScheduleItemOption {
	return func(it *domain.ScheduleItem) {
		it.PercentComplete = p
	}
}

func NewTestScheduleItem(projectID string, seq int, name string, opts ...ScheduleItemOption) domain.ScheduleItem {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	it := domain.ScheduleItem{
		ID:           uuid.New().String(),
		ProjectID:    projectID,
		Seq:          seq,
		Name:         name,
		StartDate:    start,
		DurationDays: 5,
		Status:       domain.ItemNotStarted,
	}
	it.EndDate = it.ComputeEnd()
	for _, opt := range opts {
		opt(&it)
	}
	return it
}
