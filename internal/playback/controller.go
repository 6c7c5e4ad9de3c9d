// Package playback drives play, pause and restart over a decoded narration
// buffer and reports continuously updated progress.
package playback

import (
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/redredchen01/velvet-whisper/internal/audio"
)

// State is the playback state of the currently loaded buffer.
type State string

// Playback states.
const (
	StateStopped State = "stopped"
	StatePlaying State = "playing"
	StatePaused  State = "paused"
)

const (
	// DefaultTickInterval is how often progress is recomputed while playing.
	DefaultTickInterval = 100 * time.Millisecond

	// DefaultEndTolerance is the window before the nominal duration within
	// which a running track counts as naturally finished. The underlying
	// playback primitive does not distinguish running to completion from
	// being stopped, so the end is detected by elapsed time.
	DefaultEndTolerance = 0.2
)

// ErrNoBuffer indicates a playback operation without a loaded buffer.
var ErrNoBuffer = errors.New("no audio buffer loaded")

// Snapshot is a point-in-time view of the playback state.
// Invariant: 0 <= Elapsed <= Duration.
type Snapshot struct {
	State    State   `json:"state"`
	Elapsed  float64 `json:"elapsedSeconds"`
	Duration float64 `json:"totalSeconds"`
}

// Sink is the playback primitive the controller drives. The default sink does
// nothing; tests substitute a recording implementation.
type Sink interface {
	Start(buf *audio.Buffer, offsetSeconds float64) error
	Stop()
}

// NopSink discards playback.
type NopSink struct{}

// Start implements Sink.
func (NopSink) Start(*audio.Buffer, float64) error { return nil }

// Stop implements Sink.
func (NopSink) Stop() {}

// Controller is the playback state machine for one loaded buffer at a time.
// Elapsed time is recomputed from a monotonic clock anchored at the moment
// playback started or resumed, never accumulated per tick.
type Controller struct {
	mu sync.Mutex

	clk          clock.Clock
	sink         Sink
	tickInterval time.Duration
	endTolerance float64
	onProgress   func(Snapshot)

	buf      *audio.Buffer
	state    State
	duration float64
	elapsed  float64   // authoritative while not playing
	anchor   time.Time // playback start minus already-elapsed offset

	stopTick chan struct{}
}

// NewController creates a stopped controller with no buffer loaded.
// onProgress may be nil; when set it is invoked on every progress tick while
// playing and once on each state transition.
func NewController(clk clock.Clock, sink Sink, onProgress func(Snapshot)) *Controller {
	if sink == nil {
		sink = NopSink{}
	}

	return &Controller{
		clk:          clk,
		sink:         sink,
		tickInterval: DefaultTickInterval,
		endTolerance: DefaultEndTolerance,
		onProgress:   onProgress,
		state:        StateStopped,
	}
}

// Load installs a new buffer, forcing the controller to {stopped, 0, duration}
// and releasing the previous playback resource.
func (c *Controller) Load(buf *audio.Buffer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTickingLocked()
	c.sink.Stop()

	c.buf = buf
	c.state = StateStopped
	c.elapsed = 0
	c.duration = 0

	if buf != nil {
		c.duration = buf.Duration()
	}

	c.reportLocked()
}

// Play starts playback from the recorded elapsed position. Starting from
// stopped begins at zero; resuming from paused continues where pause left off.
// Play while already playing is a no-op.
func (c *Controller) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.buf == nil {
		return ErrNoBuffer
	}

	if c.state == StatePlaying {
		return nil
	}

	return c.startLocked(c.elapsed)
}

// Pause suspends playback, recording elapsed time at the pause instant.
// Pause outside of playing is a no-op.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePlaying {
		return
	}

	c.elapsed = c.elapsedLocked()
	c.state = StatePaused
	c.stopTickingLocked()
	c.sink.Stop()
	c.reportLocked()
}

// Restart forces playback from the beginning regardless of current state.
func (c *Controller) Restart() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.buf == nil {
		return ErrNoBuffer
	}

	c.stopTickingLocked()
	c.sink.Stop()

	return c.startLocked(0)
}

// Snapshot returns the current state with a live elapsed value.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		State:    c.state,
		Elapsed:  c.elapsedLocked(),
		Duration: c.duration,
	}
}

// Close releases the playback resource and stops progress reporting.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTickingLocked()
	c.sink.Stop()
	c.state = StateStopped
	c.elapsed = 0
}

func (c *Controller) startLocked(offset float64) error {
	err := c.sink.Start(c.buf, offset)
	if err != nil {
		return err
	}

	c.elapsed = offset
	c.anchor = c.clk.Now().Add(-time.Duration(offset * float64(time.Second)))
	c.state = StatePlaying
	c.startTickingLocked()
	c.reportLocked()

	return nil
}

// elapsedLocked recomputes elapsed time from the clock anchor while playing.
func (c *Controller) elapsedLocked() float64 {
	if c.state != StatePlaying {
		return c.elapsed
	}

	elapsed := c.clk.Since(c.anchor).Seconds()
	if elapsed > c.duration {
		return c.duration
	}

	return elapsed
}

func (c *Controller) startTickingLocked() {
	stop := make(chan struct{})
	c.stopTick = stop

	ticker := c.clk.Ticker(c.tickInterval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if done := c.tick(stop); done {
					return
				}
			}
		}
	}()
}

// tick recomputes progress and detects the natural end of the track.
func (c *Controller) tick(stop chan struct{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A pause or load may have retired this loop already.
	if c.stopTick != stop || c.state != StatePlaying {
		return true
	}

	elapsed := c.elapsedLocked()
	if elapsed >= c.duration-c.endTolerance {
		c.state = StateStopped
		c.elapsed = 0
		c.stopTick = nil
		c.sink.Stop()
		c.reportLocked()

		return true
	}

	c.reportLocked()

	return false
}

func (c *Controller) stopTickingLocked() {
	if c.stopTick != nil {
		close(c.stopTick)
		c.stopTick = nil
	}
}

func (c *Controller) reportLocked() {
	if c.onProgress == nil {
		return
	}

	c.onProgress(Snapshot{
		State:    c.state,
		Elapsed:  c.elapsedLocked(),
		Duration: c.duration,
	})
}
