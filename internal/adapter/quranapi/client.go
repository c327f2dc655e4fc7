package quranapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/escalopa/tajweed-coach/internal/domain"
)

// Client fetches canonical ayah text (with harakat) from a Quran text API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// AyahText returns the canonical Arabic text of an ayah by its XXXYYY ID.
func (c *Client) AyahText(ctx context.Context, ayahID string) (string, error) {
	surahNumber, ayahNumber, err := domain.ParseAyahID(ayahID)
	if err != nil {
		return "", fmt.Errorf("parse ayah ID: %w", err)
	}

	url := fmt.Sprintf("%s/ayah/%d:%d", c.baseURL, surahNumber, ayahNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domain.NewCollaboratorError(domain.ErrKindServiceUnavailable, "fetch ayah", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", domain.NewCollaboratorError(domain.ErrKindPermissionDenied, "fetch ayah",
			fmt.Errorf("status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return "", domain.NewCollaboratorError(domain.ErrKindServiceUnavailable, "fetch ayah",
			fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	var result struct {
		Data struct {
			Text string `json:"text"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if result.Data.Text == "" {
		return "", fmt.Errorf("empty ayah text for %s", ayahID)
	}

	return result.Data.Text, nil
}
