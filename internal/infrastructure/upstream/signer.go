// Package upstream holds clients for the external media backend. The signed
// URL endpoint is the only piece of it this service talks to.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/schoolhub/portal-api/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings for the media backend client.
type Config struct {
	BaseURL string
	// APIToken authenticates this service to the media backend.
	APIToken string
	Timeout  time.Duration
}

// SignerClient requests short-lived signed viewing URLs from the media
// backend, one HTTP round trip per attachment id. It never batches.
type SignerClient struct {
	baseURL  string
	apiToken string
	http     *http.Client
}

func NewSignerClient(cfg Config) *SignerClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &SignerClient{
		baseURL:  cfg.BaseURL,
		apiToken: cfg.APIToken,
		http:     &http.Client{Timeout: timeout},
	}
}

type signedURLResponse struct {
	ViewURL string `json:"view_url"`
}

// SignedURL exchanges an attachment id for a viewable URL.
func (c *SignerClient) SignedURL(ctx context.Context, attachmentID string) (string, error) {
	endpoint := fmt.Sprintf("%s/attachments/%s/signed-url", c.baseURL, url.PathEscape(attachmentID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("signed url request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("signed url request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", domain.ErrAttachmentNotFound
	default:
		return "", fmt.Errorf("%w: upstream status %d", domain.ErrSignerUnavailable, resp.StatusCode)
	}

	var body signedURLResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode signed url response: %w", err)
	}
	if body.ViewURL == "" {
		return "", domain.ErrSignerUnavailable
	}
	return body.ViewURL, nil
}
