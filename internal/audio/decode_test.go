// Package audio_test tests narration payload decoding.
package audio_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redredchen01/velvet-whisper/internal/audio"
)

const testSampleRate = 24000

func TestDecodePCM_SampleCountAndDuration(t *testing.T) {
	t.Parallel()

	// 6 bytes of PCM16 is exactly 3 samples.
	raw := []byte{0x00, 0x00, 0x00, 0x40, 0x00, 0x80}

	buf, err := audio.DecodePCM(raw, testSampleRate, 1)
	require.NoError(t, err)

	assert.Len(t, buf.Samples, 3)
	assert.InEpsilon(t, 3.0/float64(testSampleRate), buf.Duration(), 1e-9)
	assert.Equal(t, testSampleRate, buf.SampleRate)
	assert.Equal(t, 1, buf.Channels)
}

func TestDecodePCM_Normalization(t *testing.T) {
	t.Parallel()

	// 0x0000 = 0, 0x4000 = 16384, 0x8000 = -32768 little-endian.
	raw := []byte{0x00, 0x00, 0x00, 0x40, 0x00, 0x80}

	buf, err := audio.DecodePCM(raw, testSampleRate, 1)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, buf.Samples[0], 1e-9)
	assert.InDelta(t, 0.5, buf.Samples[1], 1e-9)
	assert.InDelta(t, -1.0, buf.Samples[2], 1e-9)
}

func TestDecodePCM_OddLengthRejected(t *testing.T) {
	t.Parallel()

	_, err := audio.DecodePCM([]byte{0x01, 0x02, 0x03}, testSampleRate, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, audio.ErrDecode)
}

func TestDecodeBase64PCM_RoundTrip(t *testing.T) {
	t.Parallel()

	raw := make([]byte, 2*480)
	payload := base64.StdEncoding.EncodeToString(raw)

	buf, err := audio.DecodeBase64PCM(payload, testSampleRate, 1)
	require.NoError(t, err)
	assert.Len(t, buf.Samples, 480)
	assert.InEpsilon(t, 480.0/float64(testSampleRate), buf.Duration(), 1e-9)
}

func TestDecodeBase64PCM_InvalidEncoding(t *testing.T) {
	t.Parallel()

	_, err := audio.DecodeBase64PCM("not-base64!!!", testSampleRate, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, audio.ErrDecode)
}

func TestDecodeBase64PCM_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, err := audio.DecodeBase64PCM("", 0, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, audio.ErrDecode)

	_, err = audio.DecodeBase64PCM("", testSampleRate, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, audio.ErrDecode)
}
