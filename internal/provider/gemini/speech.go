package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/redredchen01/velvet-whisper/internal/core"
)

const (
	defaultSpeechBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"
)

// speechClient issues raw generateContent calls for the speech stage. The SDK
// carries no speech configuration, so this stage speaks the REST contract
// directly: an AUDIO response modality plus a prebuilt voice selection.
type speechClient struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
}

func newSpeechClient(cfg Config) *speechClient {
	baseURL := cfg.SpeechBaseURL
	if baseURL == "" {
		baseURL = defaultSpeechBaseURL
	}

	return &speechClient{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		model:      cfg.SpeechModel,
		apiKey:     cfg.APIKey,
	}
}

type speechRequest struct {
	Contents         []speechContent `json:"contents"`
	GenerationConfig speechGenConfig `json:"generationConfig"`
}

type speechContent struct {
	Parts []speechPart `json:"parts"`
}

type speechPart struct {
	Text string `json:"text"`
}

type speechGenConfig struct {
	ResponseModalities []string     `json:"responseModalities"`
	SpeechConfig       speechConfig `json:"speechConfig"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type speechResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				InlineData struct {
					MIMEType string `json:"mimeType"`
					Data     string `json:"data"`
				} `json:"inlineData"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate synthesizes text with the given prebuilt voice and returns the
// base64 PCM payload.
func (s *speechClient) generate(ctx context.Context, text, voice string) (string, error) {
	reqBody := speechRequest{
		Contents: []speechContent{{Parts: []speechPart{{Text: text}}}},
		GenerationConfig: speechGenConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: speechConfig{
				VoiceConfig: voiceConfig{
					PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: voice},
				},
			},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal speech request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create speech request: %w", err)
	}

	httpReq.Header.Set(headerContentType, contentTypeJSON)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", classifyCallError("speech generation", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)

		return "", fmt.Errorf(
			"%w: speech generation returned %s: %s",
			core.ErrTransport,
			resp.Status,
			string(errBody),
		)
	}

	var parsed speechResponse

	err = json.NewDecoder(resp.Body).Decode(&parsed)
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrMalformedResponse, err)
	}

	payload := firstInlineAudio(parsed)
	if payload == "" {
		return "", core.ErrNoAudioPayload
	}

	return payload, nil
}

func firstInlineAudio(parsed speechResponse) string {
	for _, candidate := range parsed.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData.Data != "" {
				return part.InlineData.Data
			}
		}
	}

	return ""
}
