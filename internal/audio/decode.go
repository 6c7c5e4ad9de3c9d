// Package audio converts raw narration payloads into playable, time-addressable
// buffers.
package audio

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
)

// The speech stage returns headerless single-channel PCM16LE at a fixed rate.
const (
	// BytesPerSample is the width of one signed 16-bit sample.
	BytesPerSample = 2

	// sampleCeiling maps the int16 range onto [-1.0, 1.0].
	sampleCeiling = 32768.0
)

// ErrDecode indicates that a narration payload could not be decoded into a
// buffer.
var ErrDecode = errors.New("audio decode failure")

// Buffer is a decoded narration track. Samples are normalized to [-1.0, 1.0].
type Buffer struct {
	Samples    []float64
	SampleRate int
	Channels   int
}

// Duration returns the total playback length in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 || b.Channels <= 0 {
		return 0
	}

	return float64(len(b.Samples)) / float64(b.SampleRate*b.Channels)
}

// DecodeBase64PCM decodes a base64 payload of headerless PCM16LE samples into
// a Buffer. A payload whose byte length is not a whole multiple of the sample
// width is rejected.
func DecodeBase64PCM(payload string, sampleRate, channels int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: invalid sample rate %d", ErrDecode, sampleRate)
	}

	if channels <= 0 {
		return nil, fmt.Errorf("%w: invalid channel count %d", ErrDecode, channels)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return DecodePCM(raw, sampleRate, channels)
}

// DecodePCM converts raw PCM16LE bytes into a normalized Buffer.
func DecodePCM(raw []byte, sampleRate, channels int) (*Buffer, error) {
	if len(raw)%BytesPerSample != 0 {
		return nil, fmt.Errorf(
			"%w: payload length %d is not a multiple of the sample width",
			ErrDecode,
			len(raw),
		)
	}

	samples := make([]float64, len(raw)/BytesPerSample)
	for i := range samples {
		frame := binary.LittleEndian.Uint16(raw[i*BytesPerSample:])
		samples[i] = float64(int16(frame)) / sampleCeiling
	}

	return &Buffer{
		Samples:    samples,
		SampleRate: sampleRate,
		Channels:   channels,
	}, nil
}
