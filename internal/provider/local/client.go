// Package local implements the text-stage transport against an
// OpenAI-compatible chat-completion endpoint, typically a locally hosted
// model. It substitutes the text stage only; media stages have no local
// variant.
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/book-expert/logger"
	openai "github.com/sashabaranov/go-openai"

	"github.com/redredchen01/velvet-whisper/internal/core"
)

const (
	systemInstruction = "You are a creative writing assistant specialized in fiction. " +
		"You must output JSON."

	// PlaceholderTitle is used when the model ignores JSON mode and returns
	// plain prose; the raw content then becomes the story body.
	PlaceholderTitle = "Local Model Story"
)

// ErrEmptyCompletion indicates a chat completion without any message content.
var ErrEmptyCompletion = errors.New("empty response from local model")

// Client generates story text through a local chat-completion endpoint.
type Client struct {
	api   *openai.Client
	model string
	log   *logger.Logger
}

// NewClient builds a client for the endpoint at baseURL (for example
// "http://localhost:11434/v1"). Local endpoints need no credential.
func NewClient(baseURL, model string, log *logger.Logger) *Client {
	cfg := openai.DefaultConfig("")
	cfg.BaseURL = baseURL

	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
		log:   log,
	}
}

// GenerateStoryText requests JSON-mode output for the composed prompt. A
// payload that fails to parse as the two-field object is not a hard failure:
// the raw text becomes the story under a placeholder title.
func (c *Client) GenerateStoryText(ctx context.Context, prompt string) (core.TextResult, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return core.TextResult{}, fmt.Errorf("%w: local text generation: %w", core.ErrTimeout, err)
		}

		return core.TextResult{}, fmt.Errorf("%w: local text generation: %w", core.ErrTransport, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return core.TextResult{}, fmt.Errorf("%w: %w", core.ErrMalformedResponse, ErrEmptyCompletion)
	}

	content := resp.Choices[0].Message.Content

	var result core.TextResult

	err = json.Unmarshal([]byte(content), &result)
	if err != nil || result.Story == "" {
		c.log.Warn("Local model output was not the expected JSON, wrapping raw text")

		return core.TextResult{Title: PlaceholderTitle, Story: content}, nil
	}

	if result.Title == "" {
		result.Title = PlaceholderTitle
	}

	return result, nil
}

var _ core.TextGenerator = (*Client)(nil)
