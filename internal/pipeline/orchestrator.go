// Package pipeline sequences the three generation stages behind a single
// Generate operation: a synchronous text stage followed by a concurrent
// image and speech fan-out that joins before completion.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/book-expert/logger"
	"golang.org/x/sync/errgroup"

	"github.com/redredchen01/velvet-whisper/internal/audio"
	"github.com/redredchen01/velvet-whisper/internal/core"
	"github.com/redredchen01/velvet-whisper/internal/persona"
	"github.com/redredchen01/velvet-whisper/internal/prompt"
)

// DefaultCallTimeout bounds each individual provider call.
const DefaultCallTimeout = 120 * time.Second

// Providers bundles the three stage transports for one generation attempt.
// Text may be either the hosted or the local variant; image and speech are
// always hosted.
type Providers struct {
	Text   core.TextGenerator
	Image  core.ImageGenerator
	Speech core.SpeechGenerator
}

// Snapshot is the observable state of the orchestrator. Title and Story are
// populated as soon as the text stage succeeds so a consumer can render
// partial progress while media is still generating.
type Snapshot struct {
	Status core.Status
	Title  string
	Story  string
	Image  core.ImageResult
	Audio  *audio.Buffer
	Error  string
}

// Orchestrator is the generation state machine. It runs one attempt at a
// time: a second start while one is in flight is rejected rather than racing
// over shared state.
type Orchestrator struct {
	mu sync.Mutex

	callTimeout time.Duration
	log         *logger.Logger
	onStatus    func(core.Status)

	status  core.Status
	running bool
	title   string
	story   string
	image   core.ImageResult
	buffer  *audio.Buffer
	errMsg  string
}

// New creates an idle orchestrator. onStatus may be nil; when set it observes
// every state transition in order.
func New(callTimeout time.Duration, log *logger.Logger, onStatus func(core.Status)) *Orchestrator {
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}

	return &Orchestrator{
		callTimeout: callTimeout,
		log:         log,
		onStatus:    onStatus,
		status:      core.StatusIdle,
	}
}

// Generate runs the full pipeline for one request and blocks until it reaches
// a terminal state. The returned error wraps one of the taxonomy sentinels;
// the same failure is also observable through the snapshot.
func (o *Orchestrator) Generate(
	ctx context.Context,
	req core.GenerationRequest,
	providers Providers,
) error {
	err := o.begin()
	if err != nil {
		return err
	}
	defer o.end()

	return o.run(ctx, req, providers)
}

// StartGeneration performs the in-flight guard synchronously and then runs
// the pipeline in the background. done, when non-nil, receives the terminal
// outcome.
func (o *Orchestrator) StartGeneration(
	ctx context.Context,
	req core.GenerationRequest,
	providers Providers,
	done func(error),
) error {
	err := o.begin()
	if err != nil {
		return err
	}

	go func() {
		defer o.end()

		runErr := o.run(ctx, req, providers)

		if done != nil {
			done(runErr)
		}
	}()

	return nil
}

// Reset returns a terminal orchestrator to idle, discarding the result. A
// reset during a running attempt is rejected.
func (o *Orchestrator) Reset() error {
	o.mu.Lock()

	if o.running {
		o.mu.Unlock()

		return core.ErrGenerationInFlight
	}

	o.status = core.StatusIdle
	o.clearLocked()
	o.mu.Unlock()

	o.report(core.StatusIdle)

	return nil
}

// Snapshot returns the current observable state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	return Snapshot{
		Status: o.status,
		Title:  o.title,
		Story:  o.story,
		Image:  o.image,
		Audio:  o.buffer,
		Error:  o.errMsg,
	}
}

func (o *Orchestrator) run(ctx context.Context, req core.GenerationRequest, providers Providers) error {
	narrator, identity, tone, err := resolvePersonas(req)
	if err != nil {
		o.fail(err)

		return err
	}

	text, err := o.runTextStage(ctx, req, providers.Text, narrator, identity, tone)
	if err != nil {
		o.fail(err)

		return err
	}

	o.publishText(text)

	image, buffer, err := o.runMediaStage(ctx, providers, text.Story, narrator, identity)
	if err != nil {
		o.fail(err)

		return err
	}

	o.complete(image, buffer)

	return nil
}

// begin guards against concurrent pipelines and enters generating_text.
func (o *Orchestrator) begin() error {
	o.mu.Lock()

	if o.running {
		o.mu.Unlock()

		return core.ErrGenerationInFlight
	}

	o.running = true
	o.status = core.StatusGeneratingText
	o.clearLocked()
	o.mu.Unlock()

	o.report(core.StatusGeneratingText)

	return nil
}

func (o *Orchestrator) end() {
	o.mu.Lock()
	o.running = false
	o.mu.Unlock()
}

func (o *Orchestrator) clearLocked() {
	o.title = ""
	o.story = ""
	o.image = core.ImageResult{}
	o.buffer = nil
	o.errMsg = ""
}

func (o *Orchestrator) runTextStage(
	ctx context.Context,
	req core.GenerationRequest,
	text core.TextGenerator,
	narrator persona.NarratorProfile,
	identity persona.IdentityProfile,
	tone persona.EmotionalTone,
) (core.TextResult, error) {
	o.log.Info("Generation %s: text stage (%s / %s / %s)", req.ID, narrator.ID, identity.ID, tone.ID)

	callCtx, cancel := context.WithTimeout(ctx, o.callTimeout)
	defer cancel()

	textPrompt := prompt.ComposeTextPrompt(req.Seed, narrator, identity, tone)

	result, err := text.GenerateStoryText(callCtx, textPrompt)
	if err != nil {
		return core.TextResult{}, err
	}

	return result, nil
}

// runMediaStage fans out the image and speech calls and waits for both. The
// calls share no mutable state and write to disjoint results; the join is a
// wait-for-both with first-settled-failure-wins semantics, and a failure
// discards whatever the sibling produced.
func (o *Orchestrator) runMediaStage(
	ctx context.Context,
	providers Providers,
	story string,
	narrator persona.NarratorProfile,
	identity persona.IdentityProfile,
) (core.ImageResult, *audio.Buffer, error) {
	var (
		image  core.ImageResult
		buffer *audio.Buffer
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		callCtx, cancel := context.WithTimeout(groupCtx, o.callTimeout)
		defer cancel()

		result, err := providers.Image.GenerateCoverImage(
			callCtx,
			prompt.ComposeImagePrompt(story, narrator),
		)
		if err != nil {
			return err
		}

		image = result

		return nil
	})

	group.Go(func() error {
		callCtx, cancel := context.WithTimeout(groupCtx, o.callTimeout)
		defer cancel()

		voice, text := prompt.NarrationInput(story, narrator, identity)

		speech, err := providers.Speech.GenerateNarration(callCtx, text, string(voice))
		if err != nil {
			return err
		}

		decoded, err := audio.DecodeBase64PCM(speech.Base64Data, speech.SampleRate, speech.Channels)
		if err != nil {
			return err
		}

		buffer = decoded

		return nil
	})

	err := group.Wait()
	if err != nil {
		return core.ImageResult{}, nil, err
	}

	return image, buffer, nil
}

func (o *Orchestrator) publishText(text core.TextResult) {
	o.mu.Lock()
	o.title = text.Title
	o.story = text.Story
	o.status = core.StatusGeneratingMedia
	o.mu.Unlock()

	o.report(core.StatusGeneratingMedia)
}

func (o *Orchestrator) complete(image core.ImageResult, buffer *audio.Buffer) {
	o.mu.Lock()
	o.image = image
	o.buffer = buffer
	o.status = core.StatusComplete
	o.mu.Unlock()

	o.report(core.StatusComplete)
}

// fail collapses the attempt into the single error terminal state. No partial
// media is surfaced; the title and story survive for the error view.
func (o *Orchestrator) fail(err error) {
	o.log.Error("Generation failed: %v", err)

	o.mu.Lock()
	o.status = core.StatusError
	o.errMsg = err.Error()
	o.image = core.ImageResult{}
	o.buffer = nil
	o.mu.Unlock()

	o.report(core.StatusError)
}

func (o *Orchestrator) report(status core.Status) {
	if o.onStatus != nil {
		o.onStatus(status)
	}
}

func resolvePersonas(
	req core.GenerationRequest,
) (persona.NarratorProfile, persona.IdentityProfile, persona.EmotionalTone, error) {
	narrator, err := persona.NarratorByID(req.NarratorID)
	if err != nil {
		return persona.NarratorProfile{}, persona.IdentityProfile{}, persona.EmotionalTone{},
			fmt.Errorf("invalid request: %w", err)
	}

	identity, err := persona.IdentityByID(req.IdentityID)
	if err != nil {
		return persona.NarratorProfile{}, persona.IdentityProfile{}, persona.EmotionalTone{},
			fmt.Errorf("invalid request: %w", err)
	}

	tone, err := persona.ToneByID(req.ToneID)
	if err != nil {
		return persona.NarratorProfile{}, persona.IdentityProfile{}, persona.EmotionalTone{},
			fmt.Errorf("invalid request: %w", err)
	}

	return narrator, identity, tone, nil
}
