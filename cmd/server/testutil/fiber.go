package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"note-ledger/cmd/server/handlers/httperr"
	"note-ledger/cmd/server/middlewares"
	"note-ledger/internal/config"
	"note-ledger/internal/identity"
	"note-ledger/internal/logger"
	"note-ledger/internal/services/events"
	"note-ledger/internal/services/folders"
	"note-ledger/internal/services/notes"
	"note-ledger/internal/store/memstore"
	util "note-ledger/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// TestSecret signs every token minted by CreateTestJWT
const TestSecret = "test-secret-key-with-32-characters!!"

// CreateTestApp creates a basic Fiber app for testing with common configuration
func CreateTestApp(t *testing.T) *fiber.App {
	cfg := config.Config{LogLevel: "debug", LogFormat: "text"}
	_, err := logger.Init(cfg)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{
		ErrorHandler: httperr.Handler,
	})

	return app
}

// CreateTestValidator creates the validator the server uses
func CreateTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	return util.NewValidator()
}

// CreateTestVerifier returns an HS256 verifier for TestSecret
func CreateTestVerifier(t *testing.T) *identity.Verifier {
	t.Helper()
	v, err := identity.NewVerifier(config.Config{JWTAlgorithm: "HS256", JWTSecret: TestSecret, JWTUserClaim: "user_id"})
	require.NoError(t, err)
	return v
}

// CreateTestJWT creates a token for ownerID signed with TestSecret
func CreateTestJWT(t *testing.T, ownerID string, expiry time.Duration) string {
	t.Helper()
	token, err := identity.Issue(TestSecret, "user_id", ownerID, expiry)
	require.NoError(t, err)
	return token
}

// SetupJWTMiddleware sets up the jwt middleware against TestSecret
func SetupJWTMiddleware(t *testing.T) fiber.Handler {
	return middlewares.JWT(CreateTestVerifier(t))
}

// CreateRateLimiter creates a rate limiter for testing
func CreateRateLimiter(maxRequests int, duration time.Duration) fiber.Handler {
	return middlewares.BuildRateLimiter(maxRequests, duration)
}

// Stack is the service graph over an in-memory store
type Stack struct {
	Store   *memstore.Store
	Hub     *events.Hub
	Folders *folders.Service
	Notes   *notes.Service
	Events  *events.Service
}

// NewStack wires the services over a fresh memstore
func NewStack(t *testing.T) *Stack {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := memstore.New()
	hub := events.NewHub(16)
	eventLog := events.NewLog()
	folderSvc := folders.NewService(st, eventLog, hub, log)
	return &Stack{
		Store:   st,
		Hub:     hub,
		Folders: folderSvc,
		Notes:   notes.NewService(st, folderSvc, eventLog, hub, log),
		Events:  events.NewService(st, log),
	}
}

// CreateJSONRequest creates an HTTP request with JSON body
func CreateJSONRequest(method, url string, body any) *http.Request {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// CreateAuthenticatedRequest creates an HTTP request with Authorization header
func CreateAuthenticatedRequest(method, url string, body any, token string) *http.Request {
	req := CreateJSONRequest(method, url, body)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// CreateWebSocketRequest creates an HTTP request with WebSocket upgrade headers
func CreateWebSocketRequest(url string, token *string) *http.Request {
	requestURL := url
	if token != nil {
		requestURL += "?token=" + *token
	}

	req := httptest.NewRequest("GET", requestURL, nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Sec-WebSocket-Version", "13")
	req.Header.Set("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")
	return req
}

// DecodeJSON reads resp's body into out
func DecodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
