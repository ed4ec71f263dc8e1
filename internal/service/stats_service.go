package service

import (
	"context"

	"tech-gadget/internal/repository"
)

// StatsService exposes the aggregate counts shown on the landing page.
type StatsService interface {
	Counts(ctx context.Context) (*repository.Stats, error)
}

type statsService struct {
	stats repository.StatsRepository
}

// NewStatsService creates a new instance of StatsService.
func NewStatsService(stats repository.StatsRepository) StatsService {
	return &statsService{stats: stats}
}

func (s *statsService) Counts(ctx context.Context) (*repository.Stats, error) {
	return s.stats.Counts(ctx)
}
