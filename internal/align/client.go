// Package align talks to the hosted forced-alignment service and
// produces word-level timecodes for narration audio.
package align

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sony/gobreaker"
)

const (
	// DefaultBaseURL is the hosted forced-alignment space.
	DefaultBaseURL = "https://jacoblincool-forced-alignment.hf.space"

	connectRetries = 3
)

// Client calls the forced-alignment HTTP API. Per-item calls go through
// a circuit breaker so a dead service fails fast instead of timing out
// on every remaining entry.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewClient connects to the alignment service, retrying the initial
// health probe with linear backoff before giving up.
func NewClient(ctx context.Context, baseURL, token string) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 5 * time.Minute},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "forced-alignment",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}

	var err error
	for attempt := 1; attempt <= connectRetries; attempt++ {
		fmt.Printf("Connecting to alignment service (attempt %d/%d)...\n", attempt, connectRetries)
		if err = c.probe(ctx); err == nil {
			fmt.Println("Connected to alignment service")
			return c, nil
		}
		fmt.Fprintf(os.Stderr, "Warning: connection failed: %v\n", err)
		if attempt < connectRetries {
			wait := time.Duration(attempt) * 5 * time.Second
			fmt.Printf("Retrying in %s...\n", wait)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("alignment service unreachable after %d attempts: %w", connectRetries, err)
}

func (c *Client) probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("service unhealthy: %s", resp.Status)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// Align uploads one audio file with its transcript and returns the raw
// timecode payload the service produced.
func (c *Client) Align(ctx context.Context, audioPath, text, language string) (json.RawMessage, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.align(ctx, audioPath, text, language)
	})
	if err != nil {
		return nil, err
	}
	return result.(json.RawMessage), nil
}

func (c *Client) align(ctx context.Context, audioPath, text, language string) (json.RawMessage, error) {
	audio, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("opening audio: %w", err)
	}
	defer audio.Close()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("audio", filepath.Base(audioPath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, fmt.Errorf("reading audio: %w", err)
	}
	if err := form.WriteField("text", text); err != nil {
		return nil, err
	}
	if err := form.WriteField("language", language); err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/align", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alignment request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alignment failed: %s: %s", resp.Status, bytes.TrimSpace(payload))
	}
	if !json.Valid(payload) {
		return nil, fmt.Errorf("alignment returned invalid JSON")
	}
	return json.RawMessage(payload), nil
}
