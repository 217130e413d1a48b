package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"note-ledger/internal/config"
	"note-ledger/internal/identity"

	"github.com/brianvoe/gofakeit/v6"
)

var (
	baseURL  = flag.String("url", env("API_BASE_URL", "http://localhost:8080"), "Server base URL")
	owner    = flag.String("owner", env("OWNER_ID", "demo-owner"), "Owner id placed in the token")
	secret   = flag.String("secret", env("JWT_SECRET", config.DevJWTSecret), "HS256 secret the server verifies with")
	claim    = flag.String("claim", env("JWT_USER_CLAIM", "user_id"), "Claim carrying the owner id")
	nFolders = flag.Int("folders", envInt("FOLDERS", 5), "How many folders to create")
	nNotes   = flag.Int("n", envInt("COUNT", 100), "How many notes per folder")
	seed     = flag.Int64("seed", 0, "Faker seed, 0 means time based")
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if i, err := strconv.Atoi(os.Getenv(key)); err == nil && i > 0 {
		return i
	}
	return def
}

type client struct {
	http  *http.Client
	token string
}

func (c *client) post(path string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, *baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("POST %s failed (%d): %s", path, resp.StatusCode, data)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func main() {
	flag.Parse()
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	faker := gofakeit.New(*seed)

	token, err := identity.Issue(*secret, *claim, *owner, time.Hour)
	if err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}
	c := &client{http: &http.Client{Timeout: 10 * time.Second}, token: token}

	fmt.Printf("Seeding owner %s (folders=%d, notes=%d each) on %s\n", *owner, *nFolders, *nNotes, *baseURL)

	for f := 1; f <= *nFolders; f++ {
		var folder struct {
			ID string `json:"id"`
		}
		name := fmt.Sprintf("%s %s", faker.HipsterWord(), faker.Noun())
		if err := c.post("/api/v1/folders", map[string]string{"name": name}, &folder); err != nil {
			fmt.Fprintln(os.Stderr, "FATAL:", err)
			os.Exit(1)
		}

		for i := 1; i <= *nNotes; i++ {
			note := map[string]string{
				"title":   faker.Sentence(3),
				"content": faker.Paragraph(1, 3, 40, " "),
			}
			if err := c.post("/api/v1/folders/"+folder.ID+"/notes", note, &struct{}{}); err != nil {
				fmt.Fprintln(os.Stderr, "FATAL:", err)
				os.Exit(1)
			}
		}
		fmt.Printf("  folder %d/%d %q\n", f, *nFolders, name)
	}

	fmt.Println("done")
}
