package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"podcasts/internal/auth"
	"podcasts/internal/cache"
	apperrors "podcasts/internal/errors"
	"podcasts/internal/model"
	"podcasts/internal/password"
	"podcasts/internal/repository"
)

// userCacheTTL bounds how long a profile read that raced a concurrent edit can
// stay stale; edits invalidate the key but cannot stop an in-flight read-through.
const userCacheTTL = time.Minute

// EditProfileInput carries the optional fields of a profile edit. Nil or empty
// fields are left unchanged.
type EditProfileInput struct {
	Email    *string
	Password *string
}

// UserService handles accounts, credentials and profiles.
type UserService interface {
	CreateAccount(ctx context.Context, email, password string, role model.Role) error
	Login(ctx context.Context, email, password string) (token string, err error)
	SeeProfile(ctx context.Context, userID uint) (*model.User, error)
	Me(ctx context.Context) (*model.User, error)
	EditProfile(ctx context.Context, userID uint, input EditProfileInput) error
}

// TokenIssuer issues bearer tokens for a user id.
type TokenIssuer interface {
	Issue(userID uint) (string, error)
}

type userService struct {
	repo   repository.UserRepository
	tokens TokenIssuer
	hasher password.Hasher
	cache  *cache.Client
}

// NewUserService builds a UserService. hasher both stores and verifies passwords.
func NewUserService(repo repository.UserRepository, tokens TokenIssuer, hasher password.Hasher, cache *cache.Client) UserService {
	return &userService{
		repo:   repo,
		tokens: tokens,
		hasher: hasher,
		cache:  cache,
	}
}

func (s *userService) setPassword(user *model.User, plaintext string) error {
	if err := user.SetPassword(s.hasher, plaintext); err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return apperrors.ErrPasswordTooLong
		}
		return err
	}
	return nil
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// CreateAccount persists a new user. Email uniqueness is enforced by the
// store's unique index.
func (s *userService) CreateAccount(ctx context.Context, email, plaintext string, role model.Role) error {
	user := &model.User{
		Email: email,
		Role:  role,
	}
	if err := s.setPassword(user, plaintext); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Login verifies the credentials and issues a token.
func (s *userService) Login(ctx context.Context, email, plaintext string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrUserNotFound
		}
		return "", fmt.Errorf("find user by email: %w", err)
	}

	if !user.CheckPassword(s.hasher, plaintext) {
		return "", apperrors.ErrWrongPassword
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// SeeProfile returns any user's public profile.
func (s *userService) SeeProfile(ctx context.Context, userID uint) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(userID), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	s.cache.SetJSON(ctx, s.cacheKey(userID), user, userCacheTTL)
	return user, nil
}

// Me returns the authenticated caller.
func (s *userService) Me(ctx context.Context) (*model.User, error) {
	return auth.Authorize(ctx)
}

// EditProfile changes the email and/or password of userID inside one transaction.
func (s *userService) EditProfile(ctx context.Context, userID uint, input EditProfileInput) error {
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.UserRepository) error {
		user, err := tx.FindByIDForUpdate(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrUserNotFound
			}
			return fmt.Errorf("lock user: %w", err)
		}

		if input.Email != nil && *input.Email != "" {
			user.Email = *input.Email
		}
		if input.Password != nil && *input.Password != "" {
			if err := s.setPassword(user, *input.Password); err != nil {
				return err
			}
		}

		if err := tx.Update(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrDuplicateEmail
			}
			return fmt.Errorf("update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	return nil
}
