package app

import (
	"context"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/favorite"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/job"
)

const (
	FavoriteAdded   = "added"
	FavoriteRemoved = "removed"
)

type FavoriteService struct {
	repo favorite.Repository
	jobs job.Repository
}

func NewFavoriteService(repo favorite.Repository, jobs job.Repository) *FavoriteService {
	return &FavoriteService{repo: repo, jobs: jobs}
}

type ToggleResult struct {
	Status  string
	Message string
}

func (s *FavoriteService) Toggle(ctx context.Context, userID, jobID common.UUID) (*ToggleResult, error) {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	active, err := s.repo.Toggle(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}
	if active {
		return &ToggleResult{Status: FavoriteAdded, Message: "job has been added to your favorite list"}, nil
	}
	return &ToggleResult{Status: FavoriteRemoved, Message: "job has been removed from your favorite list"}, nil
}

func (s *FavoriteService) ListByUser(ctx context.Context, userID common.UUID) ([]favorite.WithJob, error) {
	return s.repo.ListActiveByUser(ctx, userID)
}
