package service

import (
	"context"
	"fmt"
	"time"

	"podcasts/internal/cache"
	"podcasts/internal/model"
	"podcasts/internal/repository"
)

// podcastCacheTTL bounds how long a read-through that raced a concurrent
// mutation can serve the old row; mutations invalidate but cannot stop an
// in-flight read from writing back.
const (
	podcastCacheTTL     = time.Minute
	podcastListCacheKey = "podcasts:all"
)

// UpdatePodcastInput carries the optional podcast fields to change.
type UpdatePodcastInput struct {
	Title    *string
	Category *string
	Rating   *float64
}

// UpdateEpisodeInput carries the optional episode fields to change.
type UpdateEpisodeInput struct {
	Title    *string
	Category *string
}

// PodcastService handles podcast and episode operations.
type PodcastService interface {
	GetAllPodcasts(ctx context.Context) ([]model.Podcast, error)
	GetPodcast(ctx context.Context, id uint) (*model.Podcast, error)
	CreatePodcast(ctx context.Context, title, category string) (uint, error)
	UpdatePodcast(ctx context.Context, id uint, input UpdatePodcastInput) error
	DeletePodcast(ctx context.Context, id uint) error

	GetEpisodes(ctx context.Context, podcastID uint) ([]model.Episode, error)
	CreateEpisode(ctx context.Context, podcastID uint, title, category string) (uint, error)
	UpdateEpisode(ctx context.Context, podcastID, episodeID uint, input UpdateEpisodeInput) error
	DeleteEpisode(ctx context.Context, podcastID, episodeID uint) error
}

type podcastService struct {
	repo  repository.PodcastRepository
	cache *cache.Client
}

// NewPodcastService creates a new podcast service.
func NewPodcastService(repo repository.PodcastRepository, cache *cache.Client) PodcastService {
	return &podcastService{
		repo:  repo,
		cache: cache,
	}
}

func (s *podcastService) cacheKey(id uint) string {
	return fmt.Sprintf("podcast:%d", id)
}

func (s *podcastService) invalidate(ctx context.Context, id uint) {
	_ = s.cache.Delete(ctx, s.cacheKey(id), podcastListCacheKey)
}

// GetAllPodcasts lists every podcast with its episodes.
func (s *podcastService) GetAllPodcasts(ctx context.Context) ([]model.Podcast, error) {
	var cached []model.Podcast
	if s.cache.GetJSON(ctx, podcastListCacheKey, &cached) {
		return cached, nil
	}

	podcasts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list podcasts: %w", err)
	}
	if podcasts == nil {
		podcasts = []model.Podcast{}
	}
	for i := range podcasts {
		withEpisodes(&podcasts[i])
	}

	s.cache.SetJSON(ctx, podcastListCacheKey, podcasts, podcastCacheTTL)
	return podcasts, nil
}

// GetPodcast returns one podcast with its episodes.
func (s *podcastService) GetPodcast(ctx context.Context, id uint) (*model.Podcast, error) {
	var cached model.Podcast
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		return withEpisodes(&cached), nil
	}

	podcast, err := NewResolver(s.repo).ResolvePodcast(ctx, id)
	if err != nil {
		return nil, err
	}

	withEpisodes(podcast)
	s.cache.SetJSON(ctx, s.cacheKey(id), podcast, podcastCacheTTL)
	return podcast, nil
}

// CreatePodcast inserts a podcast. A podcast with the same title and category
// violates the unique index and surfaces as an internal error.
func (s *podcastService) CreatePodcast(ctx context.Context, title, category string) (uint, error) {
	podcast := &model.Podcast{
		Title:    title,
		Category: category,
	}
	if err := s.repo.Create(ctx, podcast); err != nil {
		return 0, fmt.Errorf("create podcast: %w", err)
	}
	_ = s.cache.Delete(ctx, podcastListCacheKey)
	return podcast.ID, nil
}

// UpdatePodcast applies input to an existing podcast.
func (s *podcastService) UpdatePodcast(ctx context.Context, id uint, input UpdatePodcastInput) error {
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.PodcastRepository) error {
		podcast, err := NewLockingResolver(tx).ResolvePodcast(ctx, id)
		if err != nil {
			return err
		}

		if input.Title != nil {
			podcast.Title = *input.Title
		}
		if input.Category != nil {
			podcast.Category = *input.Category
		}
		if input.Rating != nil {
			podcast.Rating = *input.Rating
		}

		if err := tx.Update(ctx, podcast); err != nil {
			return fmt.Errorf("update podcast: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

// DeletePodcast removes a podcast and its episodes.
func (s *podcastService) DeletePodcast(ctx context.Context, id uint) error {
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.PodcastRepository) error {
		if _, err := NewLockingResolver(tx).ResolvePodcast(ctx, id); err != nil {
			return err
		}
		if err := tx.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete podcast: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, id)
	return nil
}

// GetEpisodes lists the episodes of an existing podcast straight from the store.
func (s *podcastService) GetEpisodes(ctx context.Context, podcastID uint) ([]model.Episode, error) {
	if _, err := NewResolver(s.repo).ResolvePodcast(ctx, podcastID); err != nil {
		return nil, err
	}
	episodes, err := s.repo.ListEpisodes(ctx, podcastID)
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}
	if episodes == nil {
		episodes = []model.Episode{}
	}
	return episodes, nil
}

// CreateEpisode adds an episode to an existing podcast.
func (s *podcastService) CreateEpisode(ctx context.Context, podcastID uint, title, category string) (uint, error) {
	episode := &model.Episode{
		Title:     title,
		Category:  category,
		PodcastID: podcastID,
	}

	err := s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.PodcastRepository) error {
		if _, err := NewLockingResolver(tx).ResolvePodcast(ctx, podcastID); err != nil {
			return err
		}
		if err := tx.CreateEpisode(ctx, episode); err != nil {
			return fmt.Errorf("create episode: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.invalidate(ctx, podcastID)
	return episode.ID, nil
}

// UpdateEpisode applies input to an episode of an existing podcast.
func (s *podcastService) UpdateEpisode(ctx context.Context, podcastID, episodeID uint, input UpdateEpisodeInput) error {
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.PodcastRepository) error {
		_, episode, err := NewLockingResolver(tx).ResolveEpisode(ctx, podcastID, episodeID)
		if err != nil {
			return err
		}

		if input.Title != nil {
			episode.Title = *input.Title
		}
		if input.Category != nil {
			episode.Category = *input.Category
		}

		if err := tx.UpdateEpisode(ctx, episode); err != nil {
			return fmt.Errorf("update episode: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, podcastID)
	return nil
}

// DeleteEpisode removes an episode of an existing podcast.
func (s *podcastService) DeleteEpisode(ctx context.Context, podcastID, episodeID uint) error {
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.PodcastRepository) error {
		if _, _, err := NewLockingResolver(tx).ResolveEpisode(ctx, podcastID, episodeID); err != nil {
			return err
		}
		if err := tx.DeleteEpisode(ctx, podcastID, episodeID); err != nil {
			return fmt.Errorf("delete episode: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, podcastID)
	return nil
}

func withEpisodes(p *model.Podcast) *model.Podcast {
	if p.Episodes == nil {
		p.Episodes = []model.Episode{}
	}
	return p
}
