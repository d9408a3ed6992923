package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/schoolhub/portal-api/internal/core/domain"
	"github.com/schoolhub/portal-api/internal/core/ports"
)

// AuthService implements registration, login, logout and current-user
// lookup. Tokens are HS256 JWTs; revocation state lives in the session
// store.
type AuthService struct {
	users     ports.UserRepository
	sessions  ports.SessionStore
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, sessions: sessions, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	role := domain.ResolveRole(input.RawRoles...)
	if len(input.RawRoles) > 0 && !domain.KnownRole(domain.Role(input.RawRoles[0])) {
		s.log.Warn().
			Strs("raw_roles", input.RawRoles).
			Str("email", input.Email).
			Msg("unrecognised role, falling back to student")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        input.Email,
		DisplayName:  input.DisplayName,
		PasswordHash: string(hash),
		Role:         role,
		TenantID:     input.TenantID,
		SchoolID:     input.SchoolID,
		ClassID:      input.ClassID,
		SectionID:    input.SectionID,
		Gender:       input.Gender,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.users.Create(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	token, err := s.generateToken(user, expiresAt)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login")

	return &ports.Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Logout revokes the token's jti for the remainder of its lifetime. Already
// expired tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	if err := s.sessions.Revoke(ctx, tokenID, ttl); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	s.log.Info().Str("token_id", tokenID).Msg("logout")
	return nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID, tokenID string) (*domain.User, error) {
	revoked, err := s.sessions.IsRevoked(ctx, tokenID)
	if err != nil {
		// Fail open on store errors: an unreachable Redis must not lock
		// every user out. Revocation is best-effort defence in depth.
		s.log.Warn().Err(err).Str("token_id", tokenID).Msg("revocation check failed")
	} else if revoked {
		return nil, domain.ErrSessionRevoked
	}
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) generateToken(user *domain.User, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":       user.ID,
		"role":      string(user.Role),
		"tenant_id": user.TenantID,
		"school_id": user.SchoolID,
		"jti":       newTokenID(),
		"exp":       expiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// newTokenID returns a random jti in the format SES-XXXXXXXXXXXXXXXX.
func newTokenID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("SES-%016X", time.Now().UnixNano())
	}
	return fmt.Sprintf("SES-%016X", b)
}
