package android

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	adbPath = "adb"

	listTimeout    = 5 * time.Second
	connectTimeout = 10 * time.Second
	inputTimeout   = 10 * time.Second
	captureTimeout = 15 * time.Second
)

// runnerFunc executes one adb invocation and returns its output. The
// exec-backed defaults are replaced in tests.
type runnerFunc func(ctx context.Context, timeout time.Duration, args ...string) ([]byte, error)

// ADBDevice drives a device through the external adb executable. The
// zero value is ready to use; it holds no connection and no per-device
// state, so a single value can serve any number of devices.
type ADBDevice struct {
	// ScreenshotDir, when set, keeps a copy of every capture under this
	// directory. Empty means captures leave no file behind.
	ScreenshotDir string

	run     runnerFunc // combined stdout+stderr, for text commands
	capture runnerFunc // stdout only, binary safe
}

func (r *ADBDevice) exec(ctx context.Context, timeout time.Duration, args ...string) ([]byte, error) {
	run := r.run
	if run == nil {
		run = runADB
	}
	return run(ctx, timeout, args...)
}

func (r *ADBDevice) execOut(ctx context.Context, timeout time.Duration, args ...string) ([]byte, error) {
	run := r.capture
	if run == nil {
		run = captureADB
	}
	return run(ctx, timeout, args...)
}

func runADB(ctx context.Context, timeout time.Duration, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.Debug().Str("cmd", adbPath+" "+strings.Join(args, " ")).Msg("run adb")

	out, err := exec.CommandContext(ctx, adbPath, args...).CombinedOutput()
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return out, context.DeadlineExceeded
	}
	return out, err
}

// captureADB keeps stdout separate from stderr so binary payloads such
// as screencap output cannot be interleaved with diagnostics.
func captureADB(ctx context.Context, timeout time.Duration, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log.Debug().Str("cmd", adbPath+" "+strings.Join(args, " ")).Msg("run adb")

	cmd := exec.CommandContext(ctx, adbPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return stdout.Bytes(), context.DeadlineExceeded
	}
	if err != nil && stderr.Len() > 0 {
		log.Debug().Str("stderr", stderr.String()).Msg("adb stderr")
	}
	return stdout.Bytes(), err
}

func deviceArgs(serial string) []string {
	if serial != "" {
		return []string{"-s", serial}
	}
	return nil
}
