// Package core defines the shared types and interfaces for the story-package
// generation service.
package core

import (
	"context"
)

// TextResult is the structured output of the text stage: exactly a title and a
// story body. The story separates paragraphs with newlines.
type TextResult struct {
	Title string `json:"title"`
	Story string `json:"story"`
}

// ImageResult carries the inline cover illustration returned by the image stage.
type ImageResult struct {
	MIMEType string
	Data     []byte
}

// SpeechResult carries the raw narration payload returned by the speech stage:
// base64-encoded headerless PCM16LE samples at a fixed rate and channel count.
type SpeechResult struct {
	Base64Data string
	SampleRate int
	Channels   int
}

// TextGenerator produces the rewritten story from a fully composed prompt.
// Both the hosted and the local transport implement it; the media stages have
// no local variant.
type TextGenerator interface {
	GenerateStoryText(ctx context.Context, prompt string) (TextResult, error)
}

// ImageGenerator produces the cover illustration from a composed image prompt.
type ImageGenerator interface {
	GenerateCoverImage(ctx context.Context, prompt string) (ImageResult, error)
}

// SpeechGenerator synthesizes narration audio for the story text using one of
// the prebuilt provider voices.
type SpeechGenerator interface {
	GenerateNarration(ctx context.Context, text string, voice string) (SpeechResult, error)
}
