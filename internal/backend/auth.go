package backend

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// TokenPair holds the access and refresh tokens issued by the backend.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// accessClaims are the claims the backend embeds in access tokens. The
// client decodes them without verifying the signature; verification is the
// backend's job, the client only needs the identity fields.
type accessClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// SignUpInput holds the parameters for registering a new user.
type SignUpInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name,omitempty"`
}

// Session owns the auth state for the storefront session: the current token
// pair and the signed-in user. State changes fan out to registered
// listeners. Safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	client    *Client
	logger    *slog.Logger
	tokens    *TokenPair
	user      *domain.User
	nextID    int
	listeners map[int]func(*domain.User)
}

// NewSession creates an unauthenticated session and installs itself as the
// client's token source.
func NewSession(client *Client, logger *slog.Logger) *Session {
	s := &Session{
		client:    client,
		logger:    logger,
		listeners: make(map[int]func(*domain.User)),
	}
	client.SetTokenSource(s.AccessToken)
	return s
}

// SignUp registers a new user and signs the session in.
func (s *Session) SignUp(ctx context.Context, input SignUpInput) (*domain.User, error) {
	var tokens TokenPair
	if err := s.client.post(ctx, "/auth/signup", input, &tokens); err != nil {
		return nil, err
	}
	return s.adoptTokens(ctx, tokens)
}

// SignIn authenticates with email and password.
func (s *Session) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.InvalidInput("email and password are required")
	}

	body := map[string]string{"email": email, "password": password}
	var tokens TokenPair
	if err := s.client.post(ctx, "/auth/token", body, &tokens); err != nil {
		return nil, err
	}
	return s.adoptTokens(ctx, tokens)
}

// SignOut revokes the session on the backend and clears local auth state.
// Local state is cleared even when the revoke call fails.
func (s *Session) SignOut(ctx context.Context) error {
	err := s.client.post(ctx, "/auth/logout", nil, nil)

	s.mu.Lock()
	s.tokens = nil
	s.user = nil
	s.mu.Unlock()

	s.notify(nil)

	if err != nil {
		s.logger.WarnContext(ctx, "backend signout failed, local session cleared anyway",
			slog.String("error", err.Error()),
		)
	}
	return err
}

// CurrentUser returns the signed-in user, or nil when unauthenticated.
func (s *Session) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// AccessToken returns the current access token, or empty when signed out or
// when the token has expired.
func (s *Session) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tokens == nil {
		return ""
	}
	return s.tokens.AccessToken
}

// ResetPassword asks the backend to send a password-reset email.
func (s *Session) ResetPassword(ctx context.Context, email string) error {
	if email == "" {
		return apperrors.InvalidInput("email is required")
	}
	return s.client.post(ctx, "/auth/recover", map[string]string{"email": email}, nil)
}

// OnAuthStateChange registers a listener invoked with the new user on every
// sign-in and with nil on sign-out. The returned function unsubscribes.
func (s *Session) OnAuthStateChange(fn func(*domain.User)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// adoptTokens stores a freshly issued token pair, derives the user from the
// access token claims, and notifies listeners.
func (s *Session) adoptTokens(ctx context.Context, tokens TokenPair) (*domain.User, error) {
	user, err := userFromToken(tokens.AccessToken)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.tokens = &tokens
	s.user = user
	s.mu.Unlock()

	s.notify(user)

	s.logger.InfoContext(ctx, "session authenticated",
		slog.String("user_id", user.ID),
		slog.String("role", user.Role),
	)
	u := *user
	return &u, nil
}

func (s *Session) notify(user *domain.User) {
	s.mu.Lock()
	fns := make([]func(*domain.User), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(user)
	}
}

// userFromToken decodes the identity fields from an access token without
// signature verification.
func userFromToken(token string) (*domain.User, error) {
	var claims accessClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil, apperrors.Unauthorized("malformed access token")
	}
	if claims.UserID == "" {
		return nil, apperrors.Unauthorized("access token carries no user id")
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.Unauthorized("access token expired")
	}

	role := claims.Role
	if role == "" {
		role = domain.RoleCustomer
	}
	return &domain.User{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  role,
	}, nil
}
