package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mhollis/lath/internal/domain"
	"github.com/mhollis/lath/internal/repository"
)

type estimateService struct {
	projects repository.ProjectRepo
	lines    repository.EstimateLineRepo
}

func NewEstimateService(projects repository.ProjectRepo, lines repository.EstimateLineRepo) EstimateService {
	return &estimateService{projects: projects, lines: lines}
}

func (s *estimateService) AddLine(ctx context.Context, line *domain.EstimateLineItem) error {
	if strings.TrimSpace(line.Name) == "" {
		return fmt.Errorf("estimate line name is required")
	}
	if strings.TrimSpace(line.Category) == "" {
		return fmt.Errorf("estimate line category is required")
	}
	if line.AmountCents < 0 {
		return fmt.Errorf("estimate line amount cannot be negative")
	}
	if _, err := s.projects.GetByID(ctx, line.ProjectID); err != nil {
		return err
	}
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	if line.Position == 0 {
		existing, err := s.lines.ListByProject(ctx, line.ProjectID)
		if err != nil {
			return err
		}
		line.Position = len(existing) + 1
	}
	line.CreatedAt = time.Now().UTC()
	return s.lines.Create(ctx, line)
}

func (s *estimateService) ListByProject(ctx context.Context, projectID string) ([]domain.EstimateLineItem, error) {
	return s.lines.ListByProject(ctx, projectID)
}

func (s *estimateService) RemoveLine(ctx context.Context, id string) error {
	return s.lines.Delete(ctx, id)
}
