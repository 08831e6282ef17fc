package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	ucerrors "github.com/johnquangdev/meeting-minutes/internal/usecase/errors"
	"github.com/johnquangdev/meeting-minutes/pkg/jwt"
)

// Service defines authentication operations
type Service interface {
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateAccessToken(ctx context.Context, token string) (*entities.User, error)
	Me(ctx context.Context, userID uuid.UUID) (*entities.User, error)
	CreateUser(ctx context.Context, in CreateUserInput) (*entities.User, error)
}

// SessionStore keeps refresh-token sessions; satisfied by cache.Store
type SessionStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Take(ctx context.Context, key string) (string, bool, error)
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	User         *entities.User `json:"user"`
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	ExpiresIn    int64          `json:"expires_in"`
}

// CreateUserInput seeds an account
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
	Role     entities.UserRole
}

// MinPasswordLength is enforced on account creation
const MinPasswordLength = 8

type session struct {
	UserID    uuid.UUID `json:"user_id"`
	TokenHash string    `json:"token_hash"`
	ExpiresAt time.Time `json:"expires_at"`
}

type authService struct {
	userRepo   repositories.UserRepository
	sessions   SessionStore
	jwtManager *jwt.Manager
	logger     *zap.Logger
	bcryptCost int
}

var _ Service = (*authService)(nil)

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, sessions SessionStore, jwtManager *jwt.Manager, logger *zap.Logger) Service {
	return &authService{
		userRepo:   userRepo,
		sessions:   sessions,
		jwtManager: jwtManager,
		logger:     logger,
		bcryptCost: bcrypt.DefaultCost,
	}
}

func sessionKey(id uuid.UUID) string {
	return "session:" + id.String()
}

// HashPassword hashes a plain password with bcrypt
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Login checks credentials for an active user and opens a session
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, ucerrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ucerrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ucerrors.ErrUserInactive
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to record last login", zap.String("user_id", user.ID.String()), zap.Error(err))
		}
	} else {
		user.UpdateLastLogin()
	}

	resp, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("user logged in", zap.String("user_id", user.ID.String()))
	}
	return resp, nil
}

// Refresh rotates a session: the old refresh token stops working. The
// session is consumed before the new pair is issued, so concurrent refreshes
// with one token yield a single new session.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	sess, err := s.consume(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, ucerrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !user.IsActive {
		return nil, ucerrors.ErrUserInactive
	}
	return s.issue(ctx, user)
}

// Logout deletes the session behind refreshToken
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	_, err := s.consume(ctx, refreshToken)
	return err
}

// ValidateAccessToken resolves an access token to an active user
func (s *authService) ValidateAccessToken(ctx context.Context, token string) (*entities.User, error) {
	claims, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		return nil, ucerrors.ErrTokenInvalid
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, ucerrors.ErrTokenInvalid
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ucerrors.ErrUserInactive
	}
	return user, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// CreateUser validates and stores a new account with a bcrypt hash
func (s *authService) CreateUser(ctx context.Context, in CreateUserInput) (*entities.User, error) {
	if len(in.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ucerrors.ErrInvalidInput, MinPasswordLength)
	}
	hash, err := HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := entities.NewUser(strings.ToLower(strings.TrimSpace(in.Email)), strings.TrimSpace(in.Name), hash, in.Role)
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ucerrors.ErrInvalidInput, err)
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, entities.ErrDuplicate) {
			return nil, ucerrors.ErrAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) issue(ctx context.Context, user *entities.User) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	sessionID := uuid.New()
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	hash, err := s.jwtManager.HashToken(refreshToken)
	if err != nil {
		return nil, err
	}

	ttl := s.jwtManager.GetRefreshExpiry()
	raw, err := json.Marshal(session{UserID: user.ID, TokenHash: hash, ExpiresAt: time.Now().Add(ttl)})
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Set(ctx, sessionKey(sessionID), string(raw), ttl); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtManager.GetAccessExpiry().Seconds()),
	}, nil
}

// consume validates refreshToken and removes its session in one step
func (s *authService) consume(ctx context.Context, refreshToken string) (*session, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ucerrors.ErrTokenInvalid
	}

	raw, ok, err := s.sessions.Take(ctx, sessionKey(claims.SessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok {
		return nil, ucerrors.ErrSessionNotFound
	}

	var sess session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, ucerrors.ErrSessionNotFound
	}
	hash, _ := s.jwtManager.HashToken(refreshToken)
	if sess.TokenHash != hash || sess.UserID != claims.UserID || time.Now().After(sess.ExpiresAt) {
		return nil, ucerrors.ErrSessionNotFound
	}
	return &sess, nil
}
