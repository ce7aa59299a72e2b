package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// backendClient talks to the first-party /api/generate-social-post endpoint.
type backendClient struct {
	endpoint string
	client   *http.Client
}

type backendPayload struct {
	Platform string `json:"platform"`
	Topic    string `json:"topic"`
	Style    string `json:"style"`
	Tone     string `json:"tone"`
}

type backendResponse struct {
	Post  *string `json:"post"`
	Error string  `json:"error"`
}

func (c *backendClient) Name() string {
	return fmt.Sprintf("Backend (%s)", c.endpoint)
}

func (c *backendClient) RequiresCredential() bool {
	return false
}

func (c *backendClient) Generate(ctx context.Context, r Request) (Result, error) {
	buf, err := json.Marshal(backendPayload{
		Platform: r.Platform,
		Topic:    r.Topic,
		Style:    r.Style,
		Tone:     r.Tone,
	})
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(buf))
	if err != nil {
		return Result{}, transportError(0, "", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, transportError(0, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, transportError(resp.StatusCode, "", err)
	}

	var parsed backendResponse
	parseErr := json.Unmarshal(body, &parsed)
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if !ok {
		message := ""
		if parseErr == nil {
			message = strings.TrimSpace(parsed.Error)
		}
		return Result{}, transportError(resp.StatusCode, message, fmt.Errorf("backend API error: %s", resp.Status))
	}
	if parseErr != nil {
		return Result{}, transportError(resp.StatusCode, "", fmt.Errorf("decode backend response: %w", parseErr))
	}
	if msg := strings.TrimSpace(parsed.Error); msg != "" {
		return Result{}, applicationError(resp.StatusCode, msg, errors.New("backend reported an error"))
	}
	if parsed.Post == nil {
		return Result{}, applicationError(resp.StatusCode, "", errors.New("backend response has no post"))
	}
	return Result{Text: *parsed.Post}, nil
}
