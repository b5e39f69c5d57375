package handler

import (
	"context"

	"podcasts/internal/model"
	"podcasts/internal/service"
)

// UserHandler exposes account and profile operations.
type UserHandler struct {
	users service.UserService
}

// NewUserHandler creates a user handler.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// CreateAccountInput is the input of createAccount.
type CreateAccountInput struct {
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,max=72"`
	Role     model.Role `json:"role" validate:"required,oneof=Host Listener"`
}

// LoginInput is the input of login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginOutput carries the issued token.
type LoginOutput struct {
	Output
	Token *string `json:"token"`
}

// SeeProfileInput is the input of seeProfile.
type SeeProfileInput struct {
	UserID uint `json:"userId"`
}

// UserProfileOutput carries a profile.
type UserProfileOutput struct {
	Output
	User *model.User `json:"user"`
}

// EditProfileInput is the input of editProfile.
type EditProfileInput struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,max=72"`
}

// Operations returns the user operations by name.
func (h *UserHandler) Operations() map[string]operation {
	return map[string]operation{
		"createAccount": handle(Public, h.createAccount),
		"login":         handle(Public, h.login),
		"me":            handle(Private, h.me),
		"seeProfile":    handle(Private, h.seeProfile),
		"editProfile":   handle(Private, h.editProfile),
	}
}

func (h *UserHandler) createAccount(ctx context.Context, _ *model.User, in *CreateAccountInput) interface{} {
	if err := h.users.CreateAccount(ctx, in.Email, in.Password, in.Role); err != nil {
		return failure(err)
	}
	return success()
}

func (h *UserHandler) login(ctx context.Context, _ *model.User, in *LoginInput) interface{} {
	token, err := h.users.Login(ctx, in.Email, in.Password)
	if err != nil {
		return LoginOutput{Output: failure(err)}
	}
	return LoginOutput{Output: success(), Token: &token}
}

func (h *UserHandler) me(ctx context.Context, _ *model.User, _ *NoInput) interface{} {
	user, err := h.users.Me(ctx)
	if err != nil {
		return nil
	}
	return user
}

func (h *UserHandler) seeProfile(ctx context.Context, _ *model.User, in *SeeProfileInput) interface{} {
	user, err := h.users.SeeProfile(ctx, in.UserID)
	if err != nil {
		return UserProfileOutput{Output: failure(err)}
	}
	return UserProfileOutput{Output: success(), User: user}
}

func (h *UserHandler) editProfile(ctx context.Context, caller *model.User, in *EditProfileInput) interface{} {
	err := h.users.EditProfile(ctx, caller.ID, service.EditProfileInput{
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		return failure(err)
	}
	return success()
}
