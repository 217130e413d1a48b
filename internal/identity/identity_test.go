package identity

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"note-ledger/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-with-at-least-32-characters!!"

func hsConfig() config.Config {
	return config.Config{JWTAlgorithm: "HS256", JWTSecret: testSecret, JWTUserClaim: "user_id"}
}

func TestVerifyHS256(t *testing.T) {
	v, err := NewVerifier(hsConfig())
	require.NoError(t, err)

	token, err := Issue(testSecret, "user_id", "alice", time.Minute)
	require.NoError(t, err)

	owner, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", owner)
}

func TestVerifyRejects(t *testing.T) {
	v, err := NewVerifier(hsConfig())
	require.NoError(t, err)

	expired, err := Issue(testSecret, "user_id", "alice", -time.Minute)
	require.NoError(t, err)
	wrongKey, err := Issue("another-secret-with-at-least-32-chars!!", "user_id", "alice", time.Minute)
	require.NoError(t, err)
	otherClaim, err := Issue(testSecret, "sub", "alice", time.Minute)
	require.NoError(t, err)
	blankOwner, err := Issue(testSecret, "user_id", "  ", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"garbage", "not.a.token", ErrInvalidToken},
		{"expired", expired, ErrInvalidToken},
		{"wrong key", wrongKey, ErrInvalidToken},
		{"claim missing", otherClaim, ErrMissingOwner},
		{"blank owner", blankOwner, ErrMissingOwner},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestVerifyCustomClaim(t *testing.T) {
	cfg := hsConfig()
	cfg.JWTUserClaim = "sub"
	v, err := NewVerifier(cfg)
	require.NoError(t, err)
	assert.Equal(t, "sub", v.Claim())

	token, err := Issue(testSecret, "sub", "auth0|42", time.Minute)
	require.NoError(t, err)
	owner, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "auth0|42", owner)
}

func TestVerifyRS256(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "pub.pem")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), 0o600))

	v, err := NewVerifier(config.Config{JWTAlgorithm: "rs256", JWTPublicKeyFile: path, JWTUserClaim: "user_id"})
	require.NoError(t, err)
	assert.Equal(t, "RS256", v.Algorithm())

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"user_id": "bob",
		"exp":     time.Now().Add(time.Minute).Unix(),
	}).SignedString(key)
	require.NoError(t, err)

	owner, err := v.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "bob", owner)

	// an HS256 token must not be accepted by an RS256 verifier
	hs, err := Issue(testSecret, "user_id", "bob", time.Minute)
	require.NoError(t, err)
	_, err = v.Verify(hs)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewVerifierErrors(t *testing.T) {
	_, err := NewVerifier(config.Config{JWTAlgorithm: "RS256", JWTPublicKeyFile: filepath.Join(t.TempDir(), "missing.pem")})
	assert.ErrorIs(t, err, ErrPublicKey)

	_, err = NewVerifier(config.Config{JWTAlgorithm: "ES256"})
	assert.ErrorIs(t, err, config.ErrJWTAlgorithmUnsupported)
}
