package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/praxis-platform/praxis-backend/internal/config"
)

func testAuthService(secret string, expiry time.Duration) *AuthService {
	return NewAuthService(&config.Config{
		JWTSecret:  secret,
		JWTExpiry:  expiry,
		BcryptCost: bcrypt.MinCost,
	})
}

func TestTokenRoundTrip(t *testing.T) {
	svc := testAuthService("test-secret", time.Hour)
	roleID := 3

	token, err := svc.GenerateToken(42, &roleID)
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	require.NotNil(t, claims.RoleID)
	assert.Equal(t, 3, *claims.RoleID)
}

func TestTokenRoundTripWithoutRole(t *testing.T) {
	svc := testAuthService("test-secret", time.Hour)

	token, err := svc.GenerateToken(7, nil)
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Nil(t, claims.RoleID)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := testAuthService("test-secret", -time.Minute)

	token, err := svc.GenerateToken(42, nil)
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := testAuthService("secret-a", time.Hour)
	verifier := testAuthService("secret-b", time.Hour)

	token, err := issuer.GenerateToken(42, nil)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

func TestWrongSigningMethodRejected(t *testing.T) {
	svc := testAuthService("test-secret", time.Hour)

	// alg=none token forged with the right claim shape.
	forged := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 42})
	token, err := forged.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	svc := testAuthService("test-secret", time.Hour)

	hash, err := svc.HashPassword("hunter22")
	require.NoError(t, err)

	assert.NoError(t, svc.CheckPassword(hash, "hunter22"))
	assert.ErrorIs(t, svc.CheckPassword(hash, "hunter23"), ErrInvalidCredentials)
}

func TestExtractBearer(t *testing.T) {
	token, err := ExtractBearer("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	// The scheme is matched case-sensitively.
	_, err = ExtractBearer("bearer abc.def.ghi")
	assert.ErrorIs(t, err, ErrNoBearerToken)
	_, err = ExtractBearer("BEARER abc.def.ghi")
	assert.ErrorIs(t, err, ErrNoBearerToken)

	_, err = ExtractBearer("")
	assert.ErrorIs(t, err, ErrNoBearerToken)
	_, err = ExtractBearer("Bearer ")
	assert.ErrorIs(t, err, ErrNoBearerToken)
	_, err = ExtractBearer("Basic dXNlcjpwYXNz")
	assert.ErrorIs(t, err, ErrNoBearerToken)
}
