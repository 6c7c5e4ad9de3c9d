package core

import "errors"

// Failure taxonomy for a generation attempt. Every pipeline failure wraps
// exactly one of these sentinels so callers can classify it with errors.Is.
// None of them are retried internally; recovery is an explicit re-run.
var (
	// ErrCredentialMissing indicates that no provider API key was configured.
	ErrCredentialMissing = errors.New("provider API key not configured")
	// ErrTransport indicates a network or HTTP failure from either provider.
	ErrTransport = errors.New("provider transport failure")
	// ErrTimeout indicates a provider call exceeded its configured bound.
	ErrTimeout = errors.New("provider call timed out")
	// ErrMalformedResponse indicates structured output that did not parse or
	// was missing a required field.
	ErrMalformedResponse = errors.New("malformed provider response")
	// ErrNoImagePayload indicates the image call succeeded but carried no
	// usable payload.
	ErrNoImagePayload = errors.New("no image generated")
	// ErrNoAudioPayload indicates the speech call succeeded but carried no
	// usable payload.
	ErrNoAudioPayload = errors.New("no audio generated")
	// ErrGenerationInFlight indicates a Generate was rejected because another
	// one is still running.
	ErrGenerationInFlight = errors.New("a generation is already in flight")
)
