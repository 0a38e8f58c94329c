package service

import (
	"context"

	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/repository"
)

type leaderboardService struct {
	repo repository.LeaderboardRepository
}

func NewLeaderboardService(repo repository.LeaderboardRepository) LeaderboardService {
	return &leaderboardService{repo: repo}
}

// List ranks entries by their position in the sorted read. Ranks are never stored.
func (s *leaderboardService) List(ctx context.Context, category domain.LeaderboardCategory) ([]domain.RankedEntry, error) {
	if category == "" {
		category = domain.LeaderboardGlobal
	}
	entries, err := s.repo.List(ctx, category)
	if err != nil {
		return nil, err
	}
	ranked := make([]domain.RankedEntry, len(entries))
	for i, e := range entries {
		if e.Emoji == "" {
			e.Emoji = domain.DefaultLeaderboardEmoji
		}
		ranked[i] = domain.RankedEntry{Rank: i + 1, LeaderboardEntry: e}
	}
	return ranked, nil
}

func (s *leaderboardService) Create(ctx context.Context, entry *domain.LeaderboardEntry) error {
	if entry.Emoji == "" {
		entry.Emoji = domain.DefaultLeaderboardEmoji
	}
	if entry.Category == "" {
		entry.Category = domain.LeaderboardGlobal
	}
	return s.repo.Create(ctx, entry)
}

func (s *leaderboardService) Update(ctx context.Context, id int64, patch domain.LeaderboardPatch) (*domain.LeaderboardEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(entry)
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *leaderboardService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
