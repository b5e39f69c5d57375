package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "podcasts/internal/errors"
	"podcasts/internal/model"
	"podcasts/internal/repository"
)

// Resolver addresses episodes only through an existing podcast. The podcast is
// always resolved first; an episode lookup never happens for a missing podcast.
type Resolver struct {
	repo      repository.PodcastRepository
	forUpdate bool
}

// NewResolver creates a resolver that reads without locking.
func NewResolver(repo repository.PodcastRepository) *Resolver {
	return &Resolver{repo: repo}
}

// NewLockingResolver creates a resolver that locks the rows it resolves. Use it
// with a repository bound to a transaction.
func NewLockingResolver(repo repository.PodcastRepository) *Resolver {
	return &Resolver{repo: repo, forUpdate: true}
}

// ResolvePodcast returns the podcast or a PodcastNotFoundError.
func (r *Resolver) ResolvePodcast(ctx context.Context, podcastID uint) (*model.Podcast, error) {
	var (
		podcast *model.Podcast
		err     error
	)
	if r.forUpdate {
		podcast, err = r.repo.FindByIDForUpdate(ctx, podcastID)
	} else {
		podcast, err = r.repo.FindByID(ctx, podcastID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewPodcastNotFound(podcastID)
		}
		return nil, fmt.Errorf("find podcast %d: %w", podcastID, err)
	}
	return podcast, nil
}

// ResolveEpisode resolves the podcast and then the episode inside it.
func (r *Resolver) ResolveEpisode(ctx context.Context, podcastID, episodeID uint) (*model.Podcast, *model.Episode, error) {
	podcast, err := r.ResolvePodcast(ctx, podcastID)
	if err != nil {
		return nil, nil, err
	}

	var episode *model.Episode
	if r.forUpdate {
		episode, err = r.repo.FindEpisodeForUpdate(ctx, podcastID, episodeID)
	} else {
		episode, err = r.repo.FindEpisode(ctx, podcastID, episodeID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NewEpisodeNotFound(podcastID, episodeID)
		}
		return nil, nil, fmt.Errorf("find episode %d: %w", episodeID, err)
	}
	return podcast, episode, nil
}
