// cmd/ping/main.go
//
// Intended for Docker HEALTHCHECK:
//   HEALTHCHECK CMD ["/ping"]
//
// Exits 0 only when /healthz answers 200 with status "ok", which for the
// mongo backend means the primary answered a ping.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort          = 8080
	healthEndpoint       = "/healthz"
	expectedHealthStatus = "ok"
	requestTimeout       = 2 * time.Second

	// exit codes
	codeRequestFailed     = 2
	codeBadHTTPStatus     = 3
	codeDecodeError       = 4
	codeReportedUnhealthy = 5
)

// healthResp mirrors { "status": "ok" } or { "status": "down", "error": "..." }.
type healthResp struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func main() {
	url := healthURL()
	client := &http.Client{Timeout: requestTimeout}

	resp, err := client.Get(url)
	if err != nil {
		fail(codeRequestFailed, "request failed: %v", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("failed to close response body: %v", err)
		}
	}()

	var h healthResp
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil && !errors.Is(err, io.EOF) {
		fail(codeDecodeError, "decode error: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		fail(codeBadHTTPStatus, "unexpected HTTP status %d: %s", resp.StatusCode, h.Error)
	}
	if h.Status != "" && h.Status != expectedHealthStatus {
		fail(codeReportedUnhealthy, "service reported unhealthy: %q", h.Status)
	}

	log.Printf("service healthy at %s", url)
}

// healthURL honours HEALTH_URL, else builds one from APP_PORT.
func healthURL() string {
	if u := os.Getenv("HEALTH_URL"); u != "" {
		return u
	}
	port := defaultPort
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 && p <= 65535 {
			port = p
		}
	}
	return fmt.Sprintf("http://localhost:%d%s", port, healthEndpoint)
}

func fail(code int, format string, args ...any) {
	log.Printf(format, args...)
	os.Exit(code)
}
