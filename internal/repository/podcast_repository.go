package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"podcasts/internal/model"
)

// PodcastRepository defines podcast and episode persistence operations.
type PodcastRepository interface {
	Create(ctx context.Context, podcast *model.Podcast) error
	Update(ctx context.Context, podcast *model.Podcast) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Podcast, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Podcast, error)
	List(ctx context.Context) ([]model.Podcast, error)

	CreateEpisode(ctx context.Context, episode *model.Episode) error
	UpdateEpisode(ctx context.Context, episode *model.Episode) error
	DeleteEpisode(ctx context.Context, podcastID, episodeID uint) error
	FindEpisode(ctx context.Context, podcastID, episodeID uint) (*model.Episode, error)
	FindEpisodeForUpdate(ctx context.Context, podcastID, episodeID uint) (*model.Episode, error)
	ListEpisodes(ctx context.Context, podcastID uint) ([]model.Episode, error)

	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo PodcastRepository) error) error
}

type podcastRepository struct {
	db *gorm.DB
}

// NewPodcastRepository creates a new podcast repository.
func NewPodcastRepository(db *gorm.DB) PodcastRepository {
	return &podcastRepository{db: db}
}

// Create creates a new podcast. Associations are never written through it.
func (r *podcastRepository) Create(ctx context.Context, podcast *model.Podcast) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(podcast).Error
}

// Update saves podcast columns, leaving its episodes untouched.
func (r *podcastRepository) Update(ctx context.Context, podcast *model.Podcast) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(podcast).Error
}

// Delete removes a podcast together with its episodes.
func (r *podcastRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("podcast_id = ?", id).Delete(&model.Episode{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Podcast{}, id).Error
	})
}

// FindByID finds a podcast by ID with its episodes.
func (r *podcastRepository) FindByID(ctx context.Context, id uint) (*model.Podcast, error) {
	var podcast model.Podcast
	if err := r.db.WithContext(ctx).Preload("Episodes", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).Where("id = ?", id).First(&podcast).Error; err != nil {
		return nil, err
	}
	return &podcast, nil
}

// FindByIDForUpdate finds a podcast by ID with a row-level lock. Episodes are not loaded.
func (r *podcastRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Podcast, error) {
	var podcast model.Podcast
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&podcast).Error; err != nil {
		return nil, err
	}
	return &podcast, nil
}

// List returns every podcast with its episodes.
func (r *podcastRepository) List(ctx context.Context) ([]model.Podcast, error) {
	var podcasts []model.Podcast
	if err := r.db.WithContext(ctx).Preload("Episodes", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).Order("id").Find(&podcasts).Error; err != nil {
		return nil, err
	}
	return podcasts, nil
}

// CreateEpisode creates a new episode.
func (r *podcastRepository) CreateEpisode(ctx context.Context, episode *model.Episode) error {
	return r.db.WithContext(ctx).Create(episode).Error
}

// UpdateEpisode saves an existing episode.
func (r *podcastRepository) UpdateEpisode(ctx context.Context, episode *model.Episode) error {
	return r.db.WithContext(ctx).Save(episode).Error
}

// DeleteEpisode removes an episode scoped to its podcast.
func (r *podcastRepository) DeleteEpisode(ctx context.Context, podcastID, episodeID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND podcast_id = ?", episodeID, podcastID).
		Delete(&model.Episode{}).Error
}

// FindEpisode finds an episode inside the given podcast.
func (r *podcastRepository) FindEpisode(ctx context.Context, podcastID, episodeID uint) (*model.Episode, error) {
	var episode model.Episode
	if err := r.db.WithContext(ctx).
		Where("id = ? AND podcast_id = ?", episodeID, podcastID).
		First(&episode).Error; err != nil {
		return nil, err
	}
	return &episode, nil
}

// FindEpisodeForUpdate finds an episode inside the given podcast with a row-level lock.
func (r *podcastRepository) FindEpisodeForUpdate(ctx context.Context, podcastID, episodeID uint) (*model.Episode, error) {
	var episode model.Episode
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND podcast_id = ?", episodeID, podcastID).
		First(&episode).Error; err != nil {
		return nil, err
	}
	return &episode, nil
}

// ListEpisodes returns the episodes of a podcast ordered by id.
func (r *podcastRepository) ListEpisodes(ctx context.Context, podcastID uint) ([]model.Episode, error) {
	episodes := make([]model.Episode, 0)
	if err := r.db.WithContext(ctx).Where("podcast_id = ?", podcastID).
		Order("id").Find(&episodes).Error; err != nil {
		return nil, err
	}
	return episodes, nil
}

// WithTransaction executes a function within a database transaction.
func (r *podcastRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo PodcastRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &podcastRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
