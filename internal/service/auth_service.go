package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/praxis-platform/praxis-backend/internal/config"
)

// ErrNoBearerToken is returned when the Authorization header is absent or does
// not carry the Bearer scheme.
var ErrNoBearerToken = errors.New("authorization header with Bearer scheme required")

// bearerPrefix is matched case-sensitively: "bearer x" and "BEARER x" are
// rejected, matching the documented transport contract.
const bearerPrefix = "Bearer "

// Claims is the token payload: just enough to identify the principal. The
// permission set is never embedded — it is resolved against storage on every
// authorization check so role changes apply on the next request.
type Claims struct {
	jwt.RegisteredClaims
	UserID int  `json:"user_id"`
	RoleID *int `json:"role_id,omitempty"`
}

// AuthService handles password hashing and token issuance/verification.
type AuthService struct {
	cfg *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// GenerateToken creates a signed access token for a user.
func (s *AuthService) GenerateToken(userID int, roleID *int) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.Itoa(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		UserID: userID,
		RoleID: roleID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// VerifyToken parses and validates a token, returning the claims. Malformed,
// expired, and badly-signed tokens all collapse into a single error: callers
// answer with one generic unauthenticated outcome.
func (s *AuthService) VerifyToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// ExtractBearer strips the Bearer scheme from an Authorization header value.
func ExtractBearer(header string) (string, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", ErrNoBearerToken
	}
	token := header[len(bearerPrefix):]
	if token == "" {
		return "", ErrNoBearerToken
	}
	return token, nil
}
