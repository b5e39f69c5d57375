package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.uber.org/goleak"

	"podcasts/internal/model"
	"podcasts/internal/repository"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// WithTransaction runs fn against the mock itself unless an error is configured.
func (m *MockUserRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.UserRepository) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}

// MockPodcastRepository is a mock implementation of PodcastRepository.
type MockPodcastRepository struct {
	mock.Mock
}

func (m *MockPodcastRepository) Create(ctx context.Context, podcast *model.Podcast) error {
	args := m.Called(ctx, podcast)
	return args.Error(0)
}

func (m *MockPodcastRepository) Update(ctx context.Context, podcast *model.Podcast) error {
	args := m.Called(ctx, podcast)
	return args.Error(0)
}

func (m *MockPodcastRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPodcastRepository) FindByID(ctx context.Context, id uint) (*model.Podcast, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Podcast), args.Error(1)
}

func (m *MockPodcastRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Podcast, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Podcast), args.Error(1)
}

func (m *MockPodcastRepository) List(ctx context.Context) ([]model.Podcast, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Podcast), args.Error(1)
}

func (m *MockPodcastRepository) CreateEpisode(ctx context.Context, episode *model.Episode) error {
	args := m.Called(ctx, episode)
	return args.Error(0)
}

func (m *MockPodcastRepository) UpdateEpisode(ctx context.Context, episode *model.Episode) error {
	args := m.Called(ctx, episode)
	return args.Error(0)
}

func (m *MockPodcastRepository) DeleteEpisode(ctx context.Context, podcastID, episodeID uint) error {
	args := m.Called(ctx, podcastID, episodeID)
	return args.Error(0)
}

func (m *MockPodcastRepository) FindEpisode(ctx context.Context, podcastID, episodeID uint) (*model.Episode, error) {
	args := m.Called(ctx, podcastID, episodeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Episode), args.Error(1)
}

func (m *MockPodcastRepository) FindEpisodeForUpdate(ctx context.Context, podcastID, episodeID uint) (*model.Episode, error) {
	args := m.Called(ctx, podcastID, episodeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Episode), args.Error(1)
}

func (m *MockPodcastRepository) ListEpisodes(ctx context.Context, podcastID uint) ([]model.Episode, error) {
	args := m.Called(ctx, podcastID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Episode), args.Error(1)
}

// WithTransaction runs fn against the mock itself unless an error is configured.
func (m *MockPodcastRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.PodcastRepository) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}
