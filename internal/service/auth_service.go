package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bloglist/internal/models"
	"bloglist/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL   = time.Hour
	defaultSigningKey = "dev-only-signing-key" // overridden from config in main
)

// Domain errors for auth flows. ErrInvalidCredentials deliberately covers
// both unknown-username and wrong-password so callers cannot probe which
// accounts exist.
var (
	ErrInvalidCredentials = errors.New("wrong username or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// AuthService handles registration, credential checks and session issuance.
// The credential handed to clients is a signed JWT whose jti is persisted
// in the sessions table; deleting the row revokes the token.
type AuthService struct {
	users      repository.Users
	sessions   repository.Sessions
	signingKey []byte
	tokenTTL   time.Duration
}

func NewAuthService(users repository.Users, sessions repository.Sessions, cfg Config) *AuthService {
	key := cfg.SigningKey
	if key == "" {
		key = defaultSigningKey
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{
		users:      users,
		sessions:   sessions,
		signingKey: []byte(key),
		tokenTTL:   ttl,
	}
}

// Claims defines JWT claims. The registered ID claim (jti) keys the
// server-side session record.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// SignUp hashes the password and creates a new user.
func (s *AuthService) SignUp(name, username, password string) (int, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(username) == "" {
		return 0, errors.New("name and username are required")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}
	return s.users.Create(name, username, hash)
}

// GenerateToken validates credentials, records a session and returns the
// signed credential. Each call issues a fresh uuid jti, so tokens are
// unique even under concurrent logins.
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.GetByUsername(username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now().UTC()
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	return s.issueToken(session)
}

// ParseToken verifies the credential and resolves it back to a user ID.
// A revoked (logged-out) or expired session fails with ErrInvalidSession
// even when the signature is still valid.
func (s *AuthService) ParseToken(ctx context.Context, accessToken string) (int, error) {
	claims, err := s.parseClaims(accessToken)
	if err != nil {
		return 0, err
	}

	session, err := s.sessions.GetByID(ctx, claims.ID)
	if err != nil {
		return 0, err
	}
	if session == nil || time.Now().UTC().After(session.ExpiresAt) {
		return 0, ErrInvalidSession
	}

	return claims.UserID, nil
}

// Logout revokes the session behind the credential. Logging out twice is
// not an error: deleting an absent session row is a no-op.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.parseClaims(accessToken)
	if err != nil {
		return err
	}
	return s.sessions.Delete(ctx, claims.ID)
}

// parseClaims checks signature, algorithm and expiry of the raw token.
func (s *AuthService) parseClaims(accessToken string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// issueToken signs a JWT carrying the session id and user id.
func (s *AuthService) issueToken(session models.Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		},
		UserID: session.UserID,
	})
	return token.SignedString(s.signingKey)
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
