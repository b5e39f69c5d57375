package errors

import (
	"errors"
	"fmt"
)

// InternalMessage is the only text clients see for failures that are not
// domain errors.
const InternalMessage = "Internal server error occurred."

var (
	// ErrDuplicateEmail is returned when an account with the email already exists.
	ErrDuplicateEmail = errors.New("There is a user with that email already")
	// ErrWrongPassword is returned when password verification fails.
	ErrWrongPassword = errors.New("Wrong password")
	// ErrUserNotFound is returned when a user lookup misses.
	ErrUserNotFound = errors.New("User Not Found")
	// ErrPasswordTooLong is returned for passwords the hasher cannot accept.
	ErrPasswordTooLong = errors.New("Password must be at most 72 bytes")
	// ErrForbidden is returned by the auth guard for private operations.
	ErrForbidden = errors.New("Forbidden resource")
	// ErrInternal masks unexpected persistence failures.
	ErrInternal = errors.New(InternalMessage)
)

// ErrorResponse represents a standardized transport-level error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// PodcastNotFoundError is returned when a podcast id does not resolve.
type PodcastNotFoundError struct {
	PodcastID uint
}

func (e *PodcastNotFoundError) Error() string {
	return fmt.Sprintf("Podcast with id %d not found", e.PodcastID)
}

// EpisodeNotFoundError is returned when an episode does not exist within an
// existing podcast.
type EpisodeNotFoundError struct {
	PodcastID uint
	EpisodeID uint
}

func (e *EpisodeNotFoundError) Error() string {
	return fmt.Sprintf("Episode with id %d not found in podcast with id %d", e.EpisodeID, e.PodcastID)
}

// NewPodcastNotFound creates a PodcastNotFoundError.
func NewPodcastNotFound(podcastID uint) error {
	return &PodcastNotFoundError{PodcastID: podcastID}
}

// NewEpisodeNotFound creates an EpisodeNotFoundError.
func NewEpisodeNotFound(podcastID, episodeID uint) error {
	return &EpisodeNotFoundError{PodcastID: podcastID, EpisodeID: episodeID}
}

// IsDomain reports whether err carries a message that is safe to show to clients.
func IsDomain(err error) bool {
	switch {
	case errors.Is(err, ErrDuplicateEmail),
		errors.Is(err, ErrWrongPassword),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrPasswordTooLong),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrInternal):
		return true
	}
	var podcastErr *PodcastNotFoundError
	if errors.As(err, &podcastErr) {
		return true
	}
	var episodeErr *EpisodeNotFoundError
	return errors.As(err, &episodeErr)
}

// Message maps err to the client-facing message. Anything that is not a domain
// error collapses to InternalMessage.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if !IsDomain(err) {
		return InternalMessage
	}
	var podcastErr *PodcastNotFoundError
	if errors.As(err, &podcastErr) {
		return podcastErr.Error()
	}
	var episodeErr *EpisodeNotFoundError
	if errors.As(err, &episodeErr) {
		return episodeErr.Error()
	}
	for _, sentinel := range []error{ErrDuplicateEmail, ErrWrongPassword, ErrUserNotFound, ErrPasswordTooLong, ErrForbidden} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return InternalMessage
}
