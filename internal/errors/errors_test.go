package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil", err: nil, expected: ""},
		{name: "duplicate email", err: ErrDuplicateEmail, expected: "There is a user with that email already"},
		{name: "wrapped wrong password", err: fmt.Errorf("login: %w", ErrWrongPassword), expected: "Wrong password"},
		{name: "user not found", err: ErrUserNotFound, expected: "User Not Found"},
		{name: "password too long", err: fmt.Errorf("create: %w", ErrPasswordTooLong), expected: "Password must be at most 72 bytes"},
		{name: "forbidden", err: ErrForbidden, expected: "Forbidden resource"},
		{name: "podcast not found", err: NewPodcastNotFound(999), expected: "Podcast with id 999 not found"},
		{name: "episode not found", err: NewEpisodeNotFound(1, 999), expected: "Episode with id 999 not found in podcast with id 1"},
		{name: "wrapped episode not found", err: fmt.Errorf("update: %w", NewEpisodeNotFound(2, 3)), expected: "Episode with id 3 not found in podcast with id 2"},
		{name: "internal", err: ErrInternal, expected: InternalMessage},
		{name: "unknown error is masked", err: errors.New("UNIQUE constraint failed: podcasts.title"), expected: InternalMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Message(tt.err))
		})
	}
}

func TestIsDomain(t *testing.T) {
	assert.True(t, IsDomain(ErrWrongPassword))
	assert.True(t, IsDomain(NewPodcastNotFound(1)))
	assert.False(t, IsDomain(errors.New("connection refused")))
	assert.False(t, IsDomain(nil))
}
