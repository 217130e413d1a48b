// Package identity turns a bearer token into the owner id the services
// scope data by. Tokens are minted elsewhere; this side only verifies.
package identity

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"note-ledger/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned for a token that fails parsing or verification.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingOwner is returned when the configured claim is absent or empty.
	ErrMissingOwner = errors.New("invalid token: missing owner claim")
	// ErrPublicKey is returned when the RS256 public key cannot be loaded.
	ErrPublicKey = errors.New("failed to load JWT public key")
)

// Verifier checks token signatures and extracts the owner claim.
type Verifier struct {
	alg   string
	key   any
	claim string
}

// NewVerifier builds a Verifier from cfg. For RS256 it reads the PEM public
// key file once.
func NewVerifier(cfg config.Config) (*Verifier, error) {
	alg := strings.ToUpper(cfg.JWTAlgorithm)
	v := &Verifier{alg: alg, claim: cfg.JWTUserClaim}

	switch alg {
	case "RS256":
		pem, err := os.ReadFile(cfg.JWTPublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPublicKey, err)
		}
		key, err := jwt.ParseRSAPublicKeyFromPEM(pem)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPublicKey, err)
		}
		v.key = key
	case "HS256", "":
		v.alg = "HS256"
		v.key = []byte(cfg.SigningSecret())
	default:
		return nil, config.ErrJWTAlgorithmUnsupported
	}

	if v.claim == "" {
		v.claim = "user_id"
	}
	return v, nil
}

// Algorithm returns the accepted signing algorithm.
func (v *Verifier) Algorithm() string { return v.alg }

// Key returns the verification key: a []byte secret or an *rsa.PublicKey.
func (v *Verifier) Key() any { return v.key }

// Claim returns the name of the claim carrying the owner id.
func (v *Verifier) Claim() string { return v.claim }

// OwnerFromClaims reads the owner id out of already verified claims.
func (v *Verifier) OwnerFromClaims(claims jwt.Claims) (string, error) {
	mc, ok := claims.(jwt.MapClaims)
	if !ok {
		return "", ErrMissingOwner
	}
	owner, ok := mc[v.claim].(string)
	if !ok || strings.TrimSpace(owner) == "" {
		return "", ErrMissingOwner
	}
	return owner, nil
}

// Verify parses raw, checks its signature and expiry and returns the owner id.
func (v *Verifier) Verify(raw string) (string, error) {
	token, err := jwt.Parse(raw, v.keyFunc, jwt.WithValidMethods([]string{v.alg}))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}
	return v.OwnerFromClaims(token.Claims)
}

func (v *Verifier) keyFunc(*jwt.Token) (any, error) { return v.key, nil }

// Issue signs an HS256 token carrying ownerID under claim. It is meant for
// local development and tests; production tokens come from the identity
// provider.
func Issue(secret, claim, ownerID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		claim: ownerID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
