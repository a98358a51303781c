//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"testing"
	"time"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

type book struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Rating   *int   `json:"rating"`
}

func TestSystem_E2E_BookLifecycle(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	var all []book
	doJSON(t, http.MethodGet, baseURL+"/books", nil, &all, 200)
	if len(all) == 0 {
		t.Fatalf("expected seeded books")
	}

	title := fmt.Sprintf("E2E Book %d-%d", time.Now().Unix(), rand.Intn(100000))
	rating := 4

	var created book
	doJSON(t, http.MethodPost, baseURL+"/books/create_book", map[string]any{
		"title":    title,
		"author":   "E2E Author",
		"category": "Testing",
		"rating":   rating,
	}, &created, 201)
	if created.ID == 0 {
		t.Fatalf("id missing in response: %#v", created)
	}

	var got book
	doJSON(t, http.MethodGet, baseURL+"/books/"+url.PathEscape(title), nil, &got, 200)
	if got.ID != created.ID {
		t.Fatalf("id=%d want=%d", got.ID, created.ID)
	}

	var updated book
	doJSON(t, http.MethodPut, baseURL+"/books/update_book", map[string]any{
		"title":    title,
		"author":   "E2E Author",
		"category": "Integration",
	}, &updated, 200)
	if updated.ID != created.ID || updated.Category != "Integration" {
		t.Fatalf("unexpected update result: %#v", updated)
	}

	doJSON(t, http.MethodDelete, baseURL+"/books/delete_book/"+url.PathEscape(title), nil, nil, 200)
	doJSON(t, http.MethodGet, baseURL+"/books/"+url.PathEscape(title), nil, nil, 404)
	doJSON(t, http.MethodDelete, baseURL+"/books/delete_book/"+url.PathEscape(title), nil, nil, 404)
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func doJSON(t *testing.T, method, url string, body any, out any, want int) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("%s %s: status=%d want=%d", method, url, resp.StatusCode, want)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
