package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podcasts/internal/db"
	"podcasts/internal/password"
	"podcasts/internal/repository"
	"podcasts/internal/service"
)

const sampleCatalog = `
accounts:
  - email: host@example.com
    password: secret
    role: Host
  - email: listener@example.com
    password: secret
    role: Listener
podcasts:
  - title: Go Time
    category: Tech
    rating: 4.5
    episodes:
      - title: Generics
        category: Tech
      - title: Errors
        category: Tech
  - title: Morning Run
    category: Sports
`

func newTestSeeder(t *testing.T) (*Seeder, service.PodcastService) {
	t.Helper()
	gormDB, err := db.Open(db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	podcasts := service.NewPodcastService(repository.NewPodcastRepository(gormDB), nil)
	return &Seeder{
		users:    service.NewUserService(repository.NewUserRepository(gormDB), nil, password.NewBcryptHasher(4), nil),
		podcasts: podcasts,
	}, podcasts
}

func TestParseCatalog(t *testing.T) {
	c, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)
	assert.Len(t, c.Accounts, 2)
	require.Len(t, c.Podcasts, 2)
	assert.Len(t, c.Podcasts[0].Episodes, 2)
	assert.Equal(t, 4.5, c.Podcasts[0].Rating)
}

func TestParseCatalog_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "bad yaml", doc: "accounts: [:"},
		{name: "unknown role", doc: "accounts:\n  - email: a@b.c\n    password: x\n    role: Admin\n"},
		{name: "missing password", doc: "accounts:\n  - email: a@b.c\n    role: Host\n"},
		{name: "password too long", doc: "accounts:\n  - email: a@b.c\n    password: " + strings.Repeat("x", 73) + "\n    role: Host\n"},
		{name: "missing category", doc: "podcasts:\n  - title: X\n"},
		{name: "rating out of range", doc: "podcasts:\n  - title: X\n    category: Y\n    rating: 9\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestSeeder_Apply(t *testing.T) {
	ctx := context.Background()
	seeder, podcasts := newTestSeeder(t)
	c, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)

	stats, err := seeder.Apply(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, Stats{Accounts: 2, Podcasts: 2, Episodes: 2}, stats)

	all, err := podcasts.GetAllPodcasts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 4.5, all[0].Rating)
	assert.Len(t, all[0].Episodes, 2)
	assert.NotNil(t, all[1].Episodes)
}

func TestSeeder_ApplyTwiceSkipsExisting(t *testing.T) {
	ctx := context.Background()
	seeder, podcasts := newTestSeeder(t)
	c, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)

	_, err = seeder.Apply(ctx, c)
	require.NoError(t, err)
	stats, err := seeder.Apply(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, Stats{Skipped: 4}, stats)

	all, err := podcasts.GetAllPodcasts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
