package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	signer := NewSigner([]byte("secret"), time.Hour)
	token, expiresAt, err := signer.Sign("admin-1", "root")
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := signer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "admin-1", claims.AdminID)
	require.Equal(t, "root", claims.Username)
	require.Equal(t, "admin", claims.Role)
}

func TestVerifyRejects(t *testing.T) {
	signer := NewSigner([]byte("secret"), time.Hour)
	token, _, err := signer.Sign("admin-1", "root")
	require.NoError(t, err)

	_, err = NewSigner([]byte("other"), time.Hour).Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = signer.Verify("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)

	noRole, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{
		AdminID: "admin-1",
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = signer.Verify(noRole)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpiry(t *testing.T) {
	signer := NewSigner([]byte("secret"), time.Minute)
	base := time.Now()
	signer.now = func() time.Time { return base }
	token, _, err := signer.Sign("admin-1", "root")
	require.NoError(t, err)

	signer.now = func() time.Time { return base.Add(time.Minute + 10*time.Second) }
	_, err = signer.Verify(token)
	require.NoError(t, err)

	signer.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = signer.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
