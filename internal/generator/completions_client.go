package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// completionsClient calls an OpenAI-compatible chat completion API (OpenRouter by
// default) with the caller-supplied credential.
type completionsClient struct {
	base  string
	model string
	cfg   Config
}

func newCompletionsClient(cfg Config) *completionsClient {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	return &completionsClient{base: base, model: model, cfg: cfg}
}

func (c *completionsClient) Name() string {
	return fmt.Sprintf("Completions (%s)", c.model)
}

func (c *completionsClient) RequiresCredential() bool {
	return true
}

// api builds a client per call because the credential belongs to the request.
func (c *completionsClient) api(credential string) *openai.Client {
	clientConfig := openai.DefaultConfig(credential)
	clientConfig.BaseURL = c.base
	clientConfig.HTTPClient = pickHTTPClient(c.cfg.HTTPClient, c.cfg.Timeout)
	return openai.NewClientWithConfig(clientConfig)
}

func (c *completionsClient) Generate(ctx context.Context, r Request) (Result, error) {
	if strings.TrimSpace(r.Credential) == "" {
		return Result{}, transportError(0, "API key is required", errors.New("missing credential"))
	}
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPostPrompt(r)},
		},
		Temperature: 0.7,
	}

	resp, err := c.api(r.Credential).CreateChatCompletion(ctx, req)
	if err != nil {
		return Result{}, classifyCompletionsError(err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, applicationError(0, "", errors.New("completions API returned no choices"))
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return Result{}, applicationError(0, "", errors.New("completions API returned an empty post"))
	}
	return Result{Text: text}, nil
}

func classifyCompletionsError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return transportError(apiErr.HTTPStatusCode, strings.TrimSpace(apiErr.Message), err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return transportError(reqErr.HTTPStatusCode, "", err)
	}
	return transportError(0, "", err)
}
