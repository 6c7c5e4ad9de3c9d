// Package prompt_test tests prompt composition.
package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redredchen01/velvet-whisper/internal/persona"
	"github.com/redredchen01/velvet-whisper/internal/prompt"
)

func fixtures(t *testing.T) (persona.NarratorProfile, persona.IdentityProfile, persona.EmotionalTone) {
	t.Helper()

	narrator, err := persona.NarratorByID("the_aristocrat")
	require.NoError(t, err)

	identity, err := persona.IdentityByID("female_pov")
	require.NoError(t, err)

	tone, err := persona.ToneByID("angst")
	require.NoError(t, err)

	return narrator, identity, tone
}

func TestComposeTextPrompt_InterpolatesAllSlots(t *testing.T) {
	t.Parallel()

	narrator, identity, tone := fixtures(t)
	seed := "They met again at the winter ball."

	got := prompt.ComposeTextPrompt(seed, narrator, identity, tone)

	assert.Contains(t, got, narrator.Name)
	assert.Contains(t, got, narrator.TextStylePrompt)
	assert.Contains(t, got, identity.Name)
	assert.Contains(t, got, identity.Instruction)
	assert.Contains(t, got, tone.Name)
	assert.Contains(t, got, tone.Instruction)
	assert.Contains(t, got, strings.Join(tone.Keywords, ", "))
	assert.Contains(t, got, seed)
}

func TestComposeTextPrompt_Deterministic(t *testing.T) {
	t.Parallel()

	narrator, identity, tone := fixtures(t)

	first := prompt.ComposeTextPrompt("a seed", narrator, identity, tone)
	second := prompt.ComposeTextPrompt("a seed", narrator, identity, tone)
	assert.Equal(t, first, second)
}

func TestComposeImagePrompt_ShortStoryKeptVerbatim(t *testing.T) {
	t.Parallel()

	narrator, _, _ := fixtures(t)
	story := "A short story body."

	got := prompt.ComposeImagePrompt(story, narrator)

	assert.Contains(t, got, story)
	assert.Contains(t, got, narrator.ImageStyle)
}

func TestComposeImagePrompt_LongStoryCutToPrefix(t *testing.T) {
	t.Parallel()

	narrator, _, _ := fixtures(t)
	story := strings.Repeat("x", prompt.ImageStoryPrefixLimit) + "TAIL"

	got := prompt.ComposeImagePrompt(story, narrator)

	assert.Contains(t, got, strings.Repeat("x", prompt.ImageStoryPrefixLimit))
	assert.NotContains(t, got, "TAIL")
}

func TestComposeImagePrompt_PrefixCountsRunes(t *testing.T) {
	t.Parallel()

	narrator, _, _ := fixtures(t)
	// Multi-byte runes must be cut on rune boundaries, never mid-sequence.
	story := strings.Repeat("é", prompt.ImageStoryPrefixLimit+10)

	got := prompt.ComposeImagePrompt(story, narrator)

	assert.Contains(t, got, strings.Repeat("é", prompt.ImageStoryPrefixLimit))
	assert.NotContains(t, got, strings.Repeat("é", prompt.ImageStoryPrefixLimit+1))
}

func TestNarrationInput_VoiceFollowsIdentityGender(t *testing.T) {
	t.Parallel()

	narrator, err := persona.NarratorByID("the_confidant")
	require.NoError(t, err)

	male, err := persona.IdentityByID("male_pov")
	require.NoError(t, err)

	female, err := persona.IdentityByID("two_heroines")
	require.NoError(t, err)

	voice, text := prompt.NarrationInput("the story", narrator, male)
	assert.Equal(t, persona.VoiceZephyr, voice)
	assert.Equal(t, "the story", text)

	voice, _ = prompt.NarrationInput("the story", narrator, female)
	assert.Equal(t, persona.VoiceKore, voice)
}
