package main

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"podcasts/internal/errors"
	"podcasts/internal/model"
	"podcasts/internal/password"
	"podcasts/internal/service"
)

// Catalog is the YAML document the seed command loads.
type Catalog struct {
	Accounts []AccountEntry `yaml:"accounts"`
	Podcasts []PodcastEntry `yaml:"podcasts"`
}

// AccountEntry describes one account.
type AccountEntry struct {
	Email    string     `yaml:"email"`
	Password string     `yaml:"password"`
	Role     model.Role `yaml:"role"`
}

// PodcastEntry describes one podcast and its episodes.
type PodcastEntry struct {
	Title    string         `yaml:"title"`
	Category string         `yaml:"category"`
	Rating   float64        `yaml:"rating"`
	Episodes []EpisodeEntry `yaml:"episodes"`
}

// EpisodeEntry describes one episode.
type EpisodeEntry struct {
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
}

// ParseCatalog decodes and checks a catalog document.
func ParseCatalog(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for i, a := range c.Accounts {
		if a.Email == "" || a.Password == "" {
			return nil, fmt.Errorf("account %d: email and password are required", i)
		}
		if len(a.Password) > password.MaxLength {
			return nil, fmt.Errorf("account %s: password longer than %d bytes", a.Email, password.MaxLength)
		}
		if a.Role != model.RoleHost && a.Role != model.RoleListener {
			return nil, fmt.Errorf("account %s: unknown role %q", a.Email, a.Role)
		}
	}
	for i, p := range c.Podcasts {
		if p.Title == "" || p.Category == "" {
			return nil, fmt.Errorf("podcast %d: title and category are required", i)
		}
		if p.Rating != 0 && (p.Rating < 1 || p.Rating > 5) {
			return nil, fmt.Errorf("podcast %s: rating %v out of range", p.Title, p.Rating)
		}
	}
	return &c, nil
}

// Stats counts what a seed run created.
type Stats struct {
	Accounts int
	Podcasts int
	Episodes int
	Skipped  int
}

// Seeder writes a catalog through the services.
type Seeder struct {
	users    service.UserService
	podcasts service.PodcastService
}

// Apply creates every catalog entry that does not exist yet. Podcasts are
// matched on title and category; their episodes are only added when the
// podcast itself is new.
func (s *Seeder) Apply(ctx context.Context, c *Catalog) (Stats, error) {
	var stats Stats

	for _, a := range c.Accounts {
		err := s.users.CreateAccount(ctx, a.Email, a.Password, a.Role)
		switch {
		case stderrors.Is(err, errors.ErrDuplicateEmail):
			log.Debug("account exists", "email", a.Email)
			stats.Skipped++
		case err != nil:
			return stats, fmt.Errorf("create account %s: %w", a.Email, err)
		default:
			stats.Accounts++
		}
	}

	existing, err := s.podcasts.GetAllPodcasts(ctx)
	if err != nil {
		return stats, fmt.Errorf("list podcasts: %w", err)
	}
	known := make(map[[2]string]bool, len(existing))
	for _, p := range existing {
		known[[2]string{p.Title, p.Category}] = true
	}

	for _, p := range c.Podcasts {
		key := [2]string{p.Title, p.Category}
		if known[key] {
			log.Debug("podcast exists", "title", p.Title, "category", p.Category)
			stats.Skipped++
			continue
		}
		id, err := s.podcasts.CreatePodcast(ctx, p.Title, p.Category)
		if err != nil {
			return stats, fmt.Errorf("create podcast %s: %w", p.Title, err)
		}
		known[key] = true
		stats.Podcasts++

		if p.Rating != 0 {
			rating := p.Rating
			if err := s.podcasts.UpdatePodcast(ctx, id, service.UpdatePodcastInput{Rating: &rating}); err != nil {
				return stats, fmt.Errorf("rate podcast %s: %w", p.Title, err)
			}
		}
		for _, e := range p.Episodes {
			if _, err := s.podcasts.CreateEpisode(ctx, id, e.Title, e.Category); err != nil {
				return stats, fmt.Errorf("create episode %s: %w", e.Title, err)
			}
			stats.Episodes++
		}
	}
	return stats, nil
}
