// Package translate is the HTTP client for the external translation
// engine: text-to-sign-gloss translation and the sign-recognition
// pipeline that produces text from a recorded video.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Error is a typed failure from the translation service.
type Error struct {
	Op     string
	Status int
	Msg    string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("translate: %s: status %d: %s", e.Op, e.Status, e.Msg)
	}
	return fmt.Sprintf("translate: %s: %s", e.Op, e.Msg)
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Translate sends raw text and returns the translated text.
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	return c.post(ctx, "translate", "/api/translate", map[string]string{"text": text})
}

// Recognize runs the sign-recognition pipeline on a recorded video
// reference and returns the recognized text.
func (c *Client) Recognize(ctx context.Context, videoURL string) (string, error) {
	return c.post(ctx, "recognize", "/api/recognize", map[string]string{"videoUrl": videoURL})
}

func (c *Client) post(ctx context.Context, op, path string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &Error{Op: op, Msg: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", &Error{Op: op, Msg: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Op: op, Msg: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &Error{Op: op, Status: resp.StatusCode, Msg: strings.TrimSpace(string(b))}
	}

	var out struct {
		Translation string `json:"translation"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &Error{Op: op, Msg: "decode: " + err.Error()}
	}
	if out.Translation == "" {
		return "", &Error{Op: op, Msg: "empty translation"}
	}
	return out.Translation, nil
}
