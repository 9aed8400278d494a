package youtube_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/juhyuk-code/b-roll-clipping-helper/internal/services"
	"github.com/juhyuk-code/b-roll-clipping-helper/internal/services/youtube"
)

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("q") != "rocket launch" {
			t.Errorf("q: got %q", query.Get("q"))
		}
		if query.Get("type") != "video" || query.Get("part") != "snippet" {
			t.Errorf("unexpected params: %v", query)
		}
		if query.Get("maxResults") != "5" {
			t.Errorf("maxResults: got %q", query.Get("maxResults"))
		}
		if query.Get("key") == "" {
			t.Error("missing api key")
		}

		response := map[string]any{
			"items": []map[string]any{
				{
					"id": map[string]any{"videoId": "vid-1"},
					"snippet": map[string]any{
						"title":        "Launch Day",
						"channelTitle": "Space Now",
						"thumbnails": map[string]any{
							"medium": map[string]any{"url": "http://img/medium.jpg"},
						},
					},
				},
				{
					// Playlist hits have no videoId and must be skipped.
					"id":      map[string]any{},
					"snippet": map[string]any{"title": "A Playlist"},
				},
			},
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	defer server.Close()

	client := youtube.NewClient("key", youtube.WithBaseURL(server.URL), youtube.WithRateLimit(1000))
	results, err := client.Search(context.Background(), "rocket launch", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results: got %d", len(results))
	}
	got := results[0]
	if got.VideoID != "vid-1" || got.Title != "Launch Day" || got.Channel != "Space Now" {
		t.Errorf("unexpected result: %+v", got)
	}
	if got.Thumbnail != "http://img/medium.jpg" {
		t.Errorf("thumbnail: got %q", got.Thumbnail)
	}
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	client := youtube.NewClient("key", youtube.WithBaseURL(server.URL), youtube.WithRateLimit(1000))
	results, err := client.Search(context.Background(), "obscure query", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("results: got %d", len(results))
	}
}

func TestSearchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusForbidden)
	}))
	defer server.Close()

	client := youtube.NewClient("key", youtube.WithBaseURL(server.URL), youtube.WithRateLimit(1000))
	_, err := client.Search(context.Background(), "anything", 5)
	if !errors.Is(err, services.ErrService) {
		t.Fatalf("expected ErrService, got %v", err)
	}
}

func TestSearchValidation(t *testing.T) {
	client := youtube.NewClient("key")
	if _, err := client.Search(context.Background(), "  ", 5); !errors.Is(err, services.ErrValidation) {
		t.Errorf("empty query: expected ErrValidation, got %v", err)
	}

	keyless := youtube.NewClient("")
	if _, err := keyless.Search(context.Background(), "query", 5); !errors.Is(err, services.ErrConfiguration) {
		t.Errorf("missing key: expected ErrConfiguration, got %v", err)
	}
}

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?t=10&v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"  dQw4w9WgXcQ  ", "dQw4w9WgXcQ", true},
		{"https://example.com/watch?v=short", "", false},
		{"not a url at all", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := youtube.ExtractVideoID(tc.input)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ExtractVideoID(%q): got (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}
