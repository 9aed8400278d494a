package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// cliTestEnv wires fake HTTP backends for every external service and a config
// file pointing at them, so CLI commands run without network access.
type cliTestEnv struct {
	configPath string
	exportDir  string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("YOUTUBE_API_KEY", "")

	anthropic := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ideas := `[{"type":"literal","query":"rocket launch","reasoning":"direct match"},` +
			`{"type":"abstract","query":"new beginnings","reasoning":"mood"},` +
			`{"type":"entity","query":"Falcon 9","reasoning":"named subject"}]`
		writeJSON(w, map[string]any{
			"content": []map[string]string{{"type": "text", "text": ideas}},
		})
	}))
	t.Cleanup(anthropic.Close)

	gemini := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		localization := `{"start":12,"end":27,"confidence":"high","description":"Clear footage of the subject"}`
		writeJSON(w, map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{"parts": []map[string]string{{"text": localization}}},
			}},
		})
	}))
	t.Cleanup(gemini.Close)

	youtube := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		videoID := "vid-" + strings.ReplaceAll(strings.ToLower(query), " ", "-")
		writeJSON(w, map[string]any{
			"items": []map[string]any{{
				"id": map[string]string{"videoId": videoID},
				"snippet": map[string]any{
					"title":        "Result for " + query,
					"channelTitle": "Stock Footage Hub",
				},
			}},
		})
	}))
	t.Cleanup(youtube.Close)

	transcripts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{
			{"start": 0.0, "duration": 5.0, "text": "Opening shot."},
			{"start": 5.0, "duration": 30.0, "text": "The main subject appears."},
		})
	}))
	t.Cleanup(transcripts.Close)

	exportDir := filepath.Join(base, "exports")
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`log_dir = %q

[anthropic]
api_key = "test-anthropic-key"
base_url = %q

[gemini]
api_key = "test-gemini-key"
base_url = %q

[youtube]
api_key = "test-youtube-key"
base_url = %q

[transcript]
provider_url = %q

[export]
output_dir = %q
`, filepath.Join(base, "logs"), anthropic.URL, gemini.URL, youtube.URL, transcripts.URL, exportDir)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{configPath: configPath, exportDir: exportDir}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "launch-day-script.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected output to contain %q, got:\n%s", substr, output)
	}
}
