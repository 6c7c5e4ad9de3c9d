// Package session owns the single UI session the service serves: the current
// generation attempt, its result, and the playback controller consuming the
// decoded narration.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/book-expert/logger"
	"github.com/google/uuid"

	"github.com/redredchen01/velvet-whisper/internal/core"
	"github.com/redredchen01/velvet-whisper/internal/pipeline"
	"github.com/redredchen01/velvet-whisper/internal/playback"
	"github.com/redredchen01/velvet-whisper/internal/settings"
)

// ProviderFactory builds the stage transports for one generation attempt from
// the active settings. The returned closer releases provider resources once
// the attempt finishes. Tests substitute fixture transports here.
type ProviderFactory func(ctx context.Context, cfg settings.Settings) (pipeline.Providers, func(), error)

// Session wires one orchestrator and one playback controller together and
// guards them against racing updates.
type Session struct {
	mu sync.Mutex

	log     *logger.Logger
	store   *settings.Store
	factory ProviderFactory
	orch    *pipeline.Orchestrator
	player  *playback.Controller

	// epoch increments on reset so a generation that finishes after the
	// session has moved on cannot apply its result.
	epoch uint64
}

// New creates a session around the given orchestrator and playback controller.
func New(
	log *logger.Logger,
	store *settings.Store,
	factory ProviderFactory,
	orch *pipeline.Orchestrator,
	player *playback.Controller,
) *Session {
	return &Session{
		log:     log,
		store:   store,
		factory: factory,
		orch:    orch,
		player:  player,
	}
}

// GenerateInput is the user-supplied portion of a generation request.
type GenerateInput struct {
	Seed       string `json:"seed"`
	NarratorID string `json:"narratorId"`
	IdentityID string `json:"identityId"`
	ToneID     string `json:"toneId"`
}

// StartGeneration validates the input, builds providers from the active
// settings and launches the pipeline in the background. It returns the
// request id; progress is observed through Story. A second start while one is
// running is rejected with core.ErrGenerationInFlight.
func (s *Session) StartGeneration(input GenerateInput) (string, error) {
	if input.Seed == "" {
		return "", fmt.Errorf("%w: empty seed text", core.ErrMalformedResponse)
	}

	cfg := s.store.Load()

	ctx := context.Background()

	providers, closeProviders, err := s.factory(ctx, cfg)
	if err != nil {
		return "", err
	}

	req := core.GenerationRequest{
		ID:         uuid.NewString(),
		Seed:       input.Seed,
		NarratorID: input.NarratorID,
		IdentityID: input.IdentityID,
		ToneID:     input.ToneID,
	}

	s.mu.Lock()
	epoch := s.epoch
	s.mu.Unlock()

	err = s.orch.StartGeneration(ctx, req, providers, func(genErr error) {
		closeProviders()

		if genErr == nil {
			s.applyResult(epoch)
		}
	})
	if err != nil {
		closeProviders()

		return "", err
	}

	return req.ID, nil
}

// applyResult loads the decoded narration into the playback controller unless
// the session has been reset since the attempt began.
func (s *Session) applyResult(epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		s.log.Warn("Discarding late generation result after session reset")

		return
	}

	snapshot := s.orch.Snapshot()
	if snapshot.Audio != nil {
		s.player.Load(snapshot.Audio)
	}
}

// Story returns the observable generation state.
func (s *Session) Story() pipeline.Snapshot {
	return s.orch.Snapshot()
}

// Reset discards the current result, releases the playback resource and
// returns to idle. A reset during a running generation is rejected.
func (s *Session) Reset() error {
	err := s.orch.Reset()
	if err != nil {
		return fmt.Errorf("reset rejected: %w", err)
	}

	s.mu.Lock()
	s.epoch++
	s.mu.Unlock()

	s.player.Load(nil)

	return nil
}

// Player exposes the playback controller for the transport layer.
func (s *Session) Player() *playback.Controller {
	return s.player
}

// Settings reads the active settings record.
func (s *Session) Settings() settings.Settings {
	return s.store.Load()
}

// SaveSettings overwrites the settings record wholesale.
func (s *Session) SaveSettings(cfg settings.Settings) error {
	err := s.store.Save(cfg)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}
