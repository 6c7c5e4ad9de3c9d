// Package prompt composes the three provider prompts from the user seed and
// the selected persona records. Composition is deterministic interpolation
// into fixed template slots; no I/O happens here.
package prompt

import (
	"fmt"
	"strings"

	"github.com/redredchen01/velvet-whisper/internal/persona"
)

// ImageStoryPrefixLimit bounds how much of the story body is quoted inside the
// image prompt. The cut is a plain prefix of the text, never a summarization.
const ImageStoryPrefixLimit = 200

const textPromptTemplate = `You are an acclaimed fiction author and an award-winning audio-drama scriptwriter.
Your specialty is turning plain source material into short, vivid, emotionally charged prose built to be read aloud.

Rewrite the user's material into a script for an immersive audiobook episode.

=============== Creative parameters ===============
1. Core style: %s
   %s

2. Point of view: %s
   %s

3. Emotional register: %s
   %s
   Keyword hints: %s

=============== Craft rules (mandatory) ===============
1. The slow-motion rule: at emotional peaks, stretch time. Every significant
   gesture carries at least two sensory details.
2. Sensory immersion: the prose must have sound, temperature and scent, not
   just sight.
3. Show, don't tell: convey feeling through body language and micro-expression,
   never by naming the emotion outright.
4. Written for the ear: vary sentence length to mimic breath; use dashes and
   ellipses for hesitation.

=============== Output format ===============
Respond with pure JSON only, no markdown fences:
{
  "title": "an evocative title matching the mood",
  "story": "the full story, paragraphs separated by \n, roughly 500-800 words"
}

=============== User source material ===============
"%s"`

const imagePromptTemplate = `Design a tasteful, artistic and atmospheric book cover based on this story excerpt:
"%s..."

Art style:
%s

Constraints:
- Keep the imagery suggestive of mood, never explicit.
- Prefer symbolic elements: entangled hands, shadows, silk, spilled wine, moonlight.
- Cinematic lighting, high detail.
- No text or typography on the image.`

// ComposeTextPrompt builds the prompt for the text stage from the user seed and
// the selected narrator, point-of-view and tone records.
func ComposeTextPrompt(
	seed string,
	narrator persona.NarratorProfile,
	identity persona.IdentityProfile,
	tone persona.EmotionalTone,
) string {
	return fmt.Sprintf(
		textPromptTemplate,
		narrator.Name,
		narrator.TextStylePrompt,
		identity.Name,
		identity.Instruction,
		tone.Name,
		tone.Instruction,
		strings.Join(tone.Keywords, ", "),
		seed,
	)
}

// ComposeImagePrompt builds the prompt for the image stage from a bounded
// prefix of the story text plus the narrator's visual style fragment.
func ComposeImagePrompt(story string, narrator persona.NarratorProfile) string {
	return fmt.Sprintf(imagePromptTemplate, prefix(story, ImageStoryPrefixLimit), narrator.ImageStyle)
}

// NarrationInput selects the narration voice by the point-of-view gender and
// returns it together with the full story text to synthesize.
func NarrationInput(
	story string,
	narrator persona.NarratorProfile,
	identity persona.IdentityProfile,
) (persona.VoiceName, string) {
	return narrator.Voice(identity.Gender), story
}

// prefix cuts s to at most limit characters without summarizing.
func prefix(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}
