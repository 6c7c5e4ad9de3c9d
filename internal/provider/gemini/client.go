// Package gemini implements the hosted provider transport: structured text
// generation and cover-image generation through the official SDK, and speech
// synthesis through the REST generateContent endpoint.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/book-expert/logger"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/redredchen01/velvet-whisper/internal/core"
)

// Sampling configuration for the text stage, tuned for creative variance.
const (
	textTemperature float32 = 1.2
	textTopP        float32 = 0.95
	textTopK        int32   = 64
)

// Config selects the provider models and the narration audio format.
type Config struct {
	APIKey      string
	TextModel   string
	ImageModel  string
	SpeechModel string
	SampleRate  int
	Channels    int

	// SpeechBaseURL overrides the REST endpoint for the speech stage.
	// Empty selects the production endpoint; tests point it at a mock server.
	SpeechBaseURL string
}

// Client is the hosted transport for all three generation stages.
type Client struct {
	genai  *genai.Client
	speech *speechClient
	cfg    Config
	log    *logger.Logger
}

// NewClient validates the credential and builds the SDK client.
func NewClient(ctx context.Context, cfg Config, log *logger.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, core.ErrCredentialMissing
	}

	sdk, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrTransport, err)
	}

	return &Client{
		genai:  sdk,
		speech: newSpeechClient(cfg),
		cfg:    cfg,
		log:    log,
	}, nil
}

// Close releases the underlying SDK connection.
func (c *Client) Close() error {
	err := c.genai.Close()
	if err != nil {
		return fmt.Errorf("failed to close provider client: %w", err)
	}

	return nil
}

// GenerateStoryText runs the text stage in structured-output mode. The model
// is constrained to a two-field JSON object; anything that does not parse into
// exactly a title and a story string is a malformed response, not retried.
func (c *Client) GenerateStoryText(ctx context.Context, prompt string) (core.TextResult, error) {
	model := c.genai.GenerativeModel(c.cfg.TextModel)
	model.SetTemperature(textTemperature)
	model.SetTopP(textTopP)
	model.SetTopK(textTopK)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title": {Type: genai.TypeString, Description: "Evocative story title"},
			"story": {Type: genai.TypeString, Description: "The narrated story text"},
		},
		Required: []string{"title", "story"},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return core.TextResult{}, classifyCallError("text generation", err)
	}

	raw := firstText(resp)
	if raw == "" {
		return core.TextResult{}, fmt.Errorf("%w: no text candidate returned", core.ErrMalformedResponse)
	}

	var result core.TextResult

	err = json.Unmarshal([]byte(raw), &result)
	if err != nil {
		return core.TextResult{}, fmt.Errorf("%w: %w", core.ErrMalformedResponse, err)
	}

	if result.Title == "" || result.Story == "" {
		return core.TextResult{}, fmt.Errorf(
			"%w: structured output missing title or story",
			core.ErrMalformedResponse,
		)
	}

	c.log.Info("Text stage complete: title %q, story %d chars", result.Title, len(result.Story))

	return result, nil
}

// GenerateCoverImage runs the image stage and returns the first inline image
// part of the response.
func (c *Client) GenerateCoverImage(ctx context.Context, prompt string) (core.ImageResult, error) {
	model := c.genai.GenerativeModel(c.cfg.ImageModel)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return core.ImageResult{}, classifyCallError("image generation", err)
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}

		for _, part := range candidate.Content.Parts {
			blob, ok := part.(genai.Blob)
			if !ok || len(blob.Data) == 0 {
				continue
			}

			c.log.Info("Image stage complete: %s, %d bytes", blob.MIMEType, len(blob.Data))

			return core.ImageResult{MIMEType: blob.MIMEType, Data: blob.Data}, nil
		}
	}

	return core.ImageResult{}, core.ErrNoImagePayload
}

// GenerateNarration runs the speech stage over the REST endpoint.
func (c *Client) GenerateNarration(
	ctx context.Context,
	text string,
	voice string,
) (core.SpeechResult, error) {
	payload, err := c.speech.generate(ctx, text, voice)
	if err != nil {
		return core.SpeechResult{}, err
	}

	c.log.Info("Speech stage complete: voice %s, %d base64 chars", voice, len(payload))

	return core.SpeechResult{
		Base64Data: payload,
		SampleRate: c.cfg.SampleRate,
		Channels:   c.cfg.Channels,
	}, nil
}

// firstText concatenates the text parts of the first candidate.
func firstText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var out string

	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}

	return out
}

// classifyCallError maps a failed provider call onto the error taxonomy,
// keeping timeouts distinct from other transport failures.
func classifyCallError(stage string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %w", core.ErrTimeout, stage, err)
	}

	return fmt.Errorf("%w: %s: %w", core.ErrTransport, stage, err)
}

var _ core.TextGenerator = (*Client)(nil)

var _ core.ImageGenerator = (*Client)(nil)

var _ core.SpeechGenerator = (*Client)(nil)
