package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dlalic/unpacking/internal/model"
)

func TestJWT_Roundtrip(t *testing.T) {
	j := NewJWT("secret")
	u := uuid.New()

	signed, err := j.Generate(u, model.RoleAdmin)
	require.NoError(t, err)

	got, err := j.Parse(signed)
	require.NoError(t, err)
	require.Equal(t, u, got.UserID)
	require.Equal(t, model.RoleAdmin, got.Role)
}

func TestJWT_WrongSecret(t *testing.T) {
	signed, err := NewJWT("secret").Generate(uuid.New(), model.RoleUser)
	require.NoError(t, err)

	_, err = NewJWT("other").Parse(signed)
	require.Error(t, err)
}

func TestJWT_Expired(t *testing.T) {
	u := uuid.New()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.String(),
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-30 * time.Minute)),
		},
		Role: model.RoleUser,
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWT("secret").Parse(signed)
	require.Error(t, err)
}

func TestJWT_MissingExpiry(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: uuid.NewString(),
		},
		Role: model.RoleUser,
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWT("secret").Parse(signed)
	require.Error(t, err)
}

func TestJWT_BadSubject(t *testing.T) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "not-an-id",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
		Role: model.RoleUser,
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWT("secret").Parse(signed)
	require.Error(t, err)
}

func TestJWT_UnknownRole(t *testing.T) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
		Role: model.Role("Superuser"),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWT("secret").Parse(signed)
	require.Error(t, err)
}

func TestJWT_WrongSigningMethod(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		Role: model.RoleUser,
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWT("secret").Parse(signed)
	require.Error(t, err)
}
