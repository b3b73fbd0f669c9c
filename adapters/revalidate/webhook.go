package revalidate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/khoahotran/cv-portfolio/internal/application/service"
	"github.com/khoahotran/cv-portfolio/internal/config"
)

const SecretHeader = "X-Revalidate-Secret"

type webhookRevalidator struct {
	client *http.Client
	url    string
	secret string
}

// NewWebhookRevalidator calls the frontend's on-demand revalidation endpoint.
func NewWebhookRevalidator(cfg config.Config) (service.Revalidator, error) {
	if cfg.Revalidate.URL == "" {
		return nil, fmt.Errorf("config revalidate url not found")
	}
	return &webhookRevalidator{
		client: &http.Client{Timeout: cfg.Revalidate.Timeout},
		url:    cfg.Revalidate.URL,
		secret: cfg.Revalidate.Secret,
	}, nil
}

func (w *webhookRevalidator) RevalidatePath(ctx context.Context, path string) error {
	body, err := json.Marshal(map[string]string{"path": path})
	if err != nil {
		return fmt.Errorf("failed to encode revalidate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build revalidate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if w.secret != "" {
		req.Header.Set(SecretHeader, w.secret)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("revalidate request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("revalidate endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
