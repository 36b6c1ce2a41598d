// Package video talks to the external video resolution service, which
// concatenates per-word clips into a single playable file. The file
// layout behind the folder key is the service's own business.
package video

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// FolderKey derives the service's lookup key from a translated phrase:
// words joined with an underscore.
func FolderKey(translated string) string {
	return strings.Join(strings.Fields(translated), "_")
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Resolver struct {
	baseURL    string
	httpClient *http.Client
}

func NewResolver(cfg Config) *Resolver {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Resolver{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Resolve asks for the concatenated video behind a folder key. An empty
// path with a nil error means the service has no video for the phrase.
func (r *Resolver) Resolve(ctx context.Context, folder string) (string, error) {
	if folder == "" {
		return "", nil
	}
	reqURL := fmt.Sprintf("%s/api/get-concatenated-video?folder=%s", r.baseURL, url.QueryEscape(folder))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("video resolve request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("video resolve: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("video resolve: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		VideoPath string `json:"videoPath"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("video resolve decode: %w", err)
	}
	return body.VideoPath, nil
}
