package core

import (
	"github.com/redredchen01/velvet-whisper/internal/audio"
)

// Status is the observable state of a generation attempt.
type Status string

// Generation states. Complete and Error are terminal; Idle is reachable from
// the terminal states again through an explicit reset.
const (
	StatusIdle            Status = "idle"
	StatusGeneratingText  Status = "generating_text"
	StatusGeneratingMedia Status = "generating_media"
	StatusComplete        Status = "complete"
	StatusError           Status = "error"
)

// Terminal reports whether no further transition can happen without a reset.
func (s Status) Terminal() bool {
	return s == StatusComplete || s == StatusError
}

// GenerationRequest is the immutable input of one generation attempt. Persona
// selections are references into the static catalogs, not copies.
type GenerationRequest struct {
	ID         string
	Seed       string
	NarratorID string
	IdentityID string
	ToneID     string
}

// GenerationResult is produced incrementally: Title and Story arrive when the
// text stage completes, Image and Audio arrive together once both media calls
// have joined. There is never an image without story text.
type GenerationResult struct {
	Title string
	Story string
	Image ImageResult
	Audio *audio.Buffer
}
