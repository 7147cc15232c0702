package android

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasttemplate"

	"github.com/androidops/droidctl/droid/definitions"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// Kept screenshots are named from this pattern. uuid keeps parallel
// captures of the same device in the same second from colliding.
const screenshotNamePattern = "screenshot_{timestamp}_{serial}_{uuid}.png"

// Screencap grabs the framebuffer as PNG via `exec-out screencap -p`.
// exec-out is the binary-safe channel; a plain `shell` pipe mangles the
// payload with CRLF translation on some hosts. Returns nil on any
// subprocess failure, timeout, empty output, or non-PNG payload.
func (r *ADBDevice) Screencap(ctx context.Context, c definitions.Controller) *definitions.ImageResult {
	args := append(deviceArgs(c.Serial()), "exec-out", "screencap", "-p")

	data, err := r.execOut(ctx, captureTimeout, args...)
	if err != nil {
		logFailure("Screencap", err)
		return nil
	}

	if len(data) == 0 || !bytes.HasPrefix(data, pngMagic) {
		logFailure("Screencap", fmt.Errorf("%w: %d bytes, not a PNG", errMalformedOutput, len(data)))
		return nil
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		logFailure("Screencap", fmt.Errorf("%w: %v", errMalformedOutput, err))
		return nil
	}

	r.persistCopy(c, data)

	return &definitions.ImageResult{
		Data:   base64.StdEncoding.EncodeToString(data),
		Format: "png",
		Width:  cfg.Width,
		Height: cfg.Height,
	}
}

// persistCopy writes the capture to disk for debugging. Without a
// configured ScreenshotDir the copy goes to the temp dir and is removed
// right away; with one it is kept under the rendered pattern name.
// Failures here never affect the capture result.
func (r *ADBDevice) persistCopy(c definitions.Controller, data []byte) {
	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("droidctl_%s.png", uuid.New().String()))
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		log.Debug().Err(err).Msg("[Screencap] temp copy not written")
		return
	}
	defer func() {
		_ = os.Remove(tempPath)
	}()

	if r.ScreenshotDir == "" {
		return
	}

	if err := os.MkdirAll(r.ScreenshotDir, 0o755); err != nil {
		log.Debug().Err(err).Msg("[Screencap] screenshot dir not created")
		return
	}

	name := fasttemplate.ExecuteString(screenshotNamePattern, "{", "}", map[string]any{
		"timestamp": time.Now().Format("20060102_150405"),
		"serial":    sanitizeSerial(c.Serial()),
		"uuid":      uuid.New().String(),
	})

	keepPath := filepath.Join(r.ScreenshotDir, name)
	if err := os.WriteFile(keepPath, data, 0o644); err != nil {
		log.Debug().Err(err).Msg("[Screencap] kept copy not written")
		return
	}
	log.Debug().Str("path", keepPath).Msg("[Screencap] kept copy")
}

// Network serials contain a colon, which is not a filename character
// everywhere.
func sanitizeSerial(serial string) string {
	return strings.ReplaceAll(serial, ":", "-")
}
