// Package stt is the speech-to-text collaborator adapter: it uploads a WAV
// recording to a Whisper-style transcription API and returns the plain
// Arabic text. The analysis engine treats whatever comes back as noisy
// input; this client only has to surface transport failures as
// distinguishable error kinds.
package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/escalopa/tajweed-coach/internal/domain"
)

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Transcribe uploads the audio stream and returns the recognized text.
// An empty transcription is a valid result, not an error.
func (c *Client) Transcribe(ctx context.Context, audio io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "recording.wav")
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}

	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("write audio data: %w", err)
	}

	if c.model != "" {
		if err := writer.WriteField("model", c.model); err != nil {
			return "", fmt.Errorf("write model field: %w", err)
		}
	}
	if err := writer.WriteField("language", "ar"); err != nil {
		return "", fmt.Errorf("write language field: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close writer: %w", err)
	}

	url := c.baseURL + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domain.NewCollaboratorError(domain.ErrKindServiceUnavailable, "transcribe", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", domain.NewCollaboratorError(domain.ErrKindPermissionDenied, "transcribe",
			fmt.Errorf("status %d", resp.StatusCode))
	case resp.StatusCode == http.StatusUnsupportedMediaType:
		return "", domain.NewCollaboratorError(domain.ErrKindUnsupportedEnvironment, "transcribe",
			fmt.Errorf("status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return "", domain.NewCollaboratorError(domain.ErrKindServiceUnavailable, "transcribe",
			fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return result.Text, nil
}
