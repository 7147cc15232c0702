package android

import (
	"context"
	"errors"
	"os/exec"

	"github.com/rs/zerolog/log"
)

// failureKind classifies why an adb invocation failed. The public API
// flattens everything into false/nil; the kind exists so logs and tests
// can still tell "adb missing" apart from "device gone" or "timed out".
type failureKind string

const (
	toolNotFound      failureKind = "tool_not_found"
	deviceUnavailable failureKind = "device_unavailable"
	timedOut          failureKind = "timeout"
	malformedOutput   failureKind = "malformed_output"
)

var errMalformedOutput = errors.New("unexpected adb output")

func classify(err error) failureKind {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return timedOut
	case errors.Is(err, exec.ErrNotFound):
		return toolNotFound
	case errors.Is(err, errMalformedOutput):
		return malformedOutput
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return toolNotFound
	}
	// Non-zero exits and everything else: adb ran but the device did
	// not come through.
	return deviceUnavailable
}

func logFailure(op string, err error) {
	log.Error().Str("kind", string(classify(err))).Err(err).Msgf("[%s] adb command failed", op)
}
