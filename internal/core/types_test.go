package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/redredchen01/velvet-whisper/internal/core"
)

func TestStatusTerminal(t *testing.T) {
	t.Parallel()

	assert.True(t, core.StatusComplete.Terminal())
	assert.True(t, core.StatusError.Terminal())

	assert.False(t, core.StatusIdle.Terminal())
	assert.False(t, core.StatusGeneratingText.Terminal())
	assert.False(t, core.StatusGeneratingMedia.Terminal())
}
