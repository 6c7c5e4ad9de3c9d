// Package persona_test tests the static catalog lookups.
package persona_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redredchen01/velvet-whisper/internal/persona"
)

func TestNarratorByID(t *testing.T) {
	t.Parallel()

	narrator, err := persona.NarratorByID("the_commander")
	require.NoError(t, err)
	assert.Equal(t, "The Commander", narrator.Name)
	assert.NotEmpty(t, narrator.TextStylePrompt)
	assert.NotEmpty(t, narrator.ImageStyle)

	_, err = persona.NarratorByID("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, persona.ErrUnknownNarrator)
}

func TestIdentityByID(t *testing.T) {
	t.Parallel()

	identity, err := persona.IdentityByID("female_pov")
	require.NoError(t, err)
	assert.Equal(t, persona.GenderFemale, identity.Gender)

	_, err = persona.IdentityByID("")
	require.Error(t, err)
	assert.ErrorIs(t, err, persona.ErrUnknownIdentity)
}

func TestToneByID(t *testing.T) {
	t.Parallel()

	tone, err := persona.ToneByID("afterglow")
	require.NoError(t, err)
	assert.NotEmpty(t, tone.Keywords)
	assert.NotEmpty(t, tone.Instruction)

	_, err = persona.ToneByID("rage")
	require.Error(t, err)
	assert.ErrorIs(t, err, persona.ErrUnknownTone)
}

func TestNarratorVoiceFollowsGender(t *testing.T) {
	t.Parallel()

	narrator, err := persona.NarratorByID("the_confidant")
	require.NoError(t, err)

	assert.Equal(t, persona.VoiceZephyr, narrator.Voice(persona.GenderMale))
	assert.Equal(t, persona.VoiceKore, narrator.Voice(persona.GenderFemale))
}

func TestCatalogIDsAreUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, n := range persona.Narrators {
		assert.False(t, seen[n.ID], "duplicate narrator id %q", n.ID)
		seen[n.ID] = true
	}

	seen = make(map[string]bool)
	for _, p := range persona.Identities {
		assert.False(t, seen[p.ID], "duplicate identity id %q", p.ID)
		seen[p.ID] = true
	}

	seen = make(map[string]bool)
	for _, tone := range persona.Tones {
		assert.False(t, seen[tone.ID], "duplicate tone id %q", tone.ID)
		seen[tone.ID] = true
	}
}
