package auth

import (
	"context"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"podcasts/internal/model"
)

const userContextKey = "user"

// UserFinder loads the account a verified token points at.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

// Guard resolves the token header of every request into an authenticated user.
// It never rejects a request: requests without a usable token simply proceed
// unauthenticated and private operations refuse them later.
type Guard struct {
	tokens *JWTService
	users  UserFinder
	header string
}

// NewGuard creates a guard reading tokens from header.
func NewGuard(tokens *JWTService, users UserFinder, header string) *Guard {
	return &Guard{tokens: tokens, users: users, header: header}
}

// Resolve verifies token and loads its user.
func (g *Guard) Resolve(ctx context.Context, token string) (*model.User, error) {
	userID, err := g.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	user, err := g.users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// Middleware returns the echo middleware that attaches the resolved user to the
// request context.
func (g *Guard) Middleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + g.header,
		ContextKey:  userContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return g.Resolve(c.Request().Context(), token)
		},
		SuccessHandler: func(c echo.Context) {
			user, ok := c.Get(userContextKey).(*model.User)
			if !ok {
				return
			}
			req := c.Request()
			c.SetRequest(req.WithContext(WithUser(req.Context(), user)))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}
