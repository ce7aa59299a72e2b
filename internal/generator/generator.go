package generator

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Provider names accepted by New.
const (
	ProviderBackend     = "backend"
	ProviderCompletions = "completions"
)

const (
	DefaultEndpoint = "http://localhost:3000/api/generate-social-post"
	DefaultBaseURL  = "https://openrouter.ai/api/v1"
	DefaultModel    = "openai/gpt-4o-mini"
)

// Config describes how to build a generation client.
type Config struct {
	Provider string
	Endpoint string
	BaseURL  string
	Model    string
	// Timeout of zero leaves the request bounded only by the caller's context.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client turns a validated request into generated post text.
type Client interface {
	Generate(ctx context.Context, req Request) (Result, error)
	RequiresCredential() bool
	Name() string
}

// Request carries the form values for one generation.
type Request struct {
	Platform   string
	Topic      string
	Tone       string
	Style      string
	Credential string
}

// String renders the request without the credential.
func (r Request) String() string {
	return fmt.Sprintf("platform=%s tone=%s style=%s topic=%q", r.Platform, r.Tone, r.Style, clipText(r.Topic, 60))
}

// MarshalZerologObject logs the request fields; the credential is never emitted.
func (r Request) MarshalZerologObject(e *zerolog.Event) {
	e.Str("platform", r.Platform).
		Str("tone", r.Tone).
		Str("style", r.Style).
		Int("topic_len", len(r.Topic)).
		Bool("credential", r.Credential != "")
}

// Result is the generated post.
type Result struct {
	Text string
}

// New builds the client for cfg.Provider.
func New(cfg Config) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderBackend:
		endpoint := strings.TrimSpace(cfg.Endpoint)
		if endpoint == "" {
			endpoint = DefaultEndpoint
		}
		return &backendClient{
			endpoint: endpoint,
			client:   pickHTTPClient(cfg.HTTPClient, cfg.Timeout),
		}, nil
	case ProviderCompletions:
		return newCompletionsClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Provider)
	}
}

func pickHTTPClient(custom *http.Client, timeout time.Duration) *http.Client {
	if custom != nil {
		return custom
	}
	return &http.Client{Timeout: timeout}
}
