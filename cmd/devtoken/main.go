// cmd/devtoken prints an HS256 token for local testing, signed with the
// same secret the server resolves from its configuration.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"note-ledger/internal/config"
	"note-ledger/internal/identity"
)

func main() {
	owner := flag.String("owner", "demo-owner", "Owner id to embed")
	ttl := flag.Duration("ttl", 24*time.Hour, "Token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if cfg.JWTAlgorithm != "HS256" {
		fmt.Fprintln(os.Stderr, "devtoken only signs HS256 tokens; RS256 tokens come from your identity provider")
		os.Exit(1)
	}

	token, err := identity.Issue(cfg.SigningSecret(), cfg.JWTUserClaim, *owner, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sign:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
