package droid

import (
	"context"
	"fmt"

	"github.com/androidops/droidctl/constants"
	"github.com/androidops/droidctl/droid/android"
	"github.com/androidops/droidctl/droid/definitions"
)

// DeviceManager covers discovery and connection bookkeeping. All
// failures are collapsed into empty/false results; details are only
// logged. Callers that need to retry simply call again.
type DeviceManager interface {
	// ListDevices returns the currently attached online devices. It
	// returns an empty slice both when nothing is attached and when the
	// underlying adb invocation fails.
	ListDevices(ctx context.Context) []definitions.DeviceInfo

	// Connect validates a serial (or ip:port address, which is dialed
	// via `adb connect` first) against the current device list. An
	// empty serial selects the sole online device. Returns false on
	// absence, ambiguity, or any subprocess error.
	Connect(ctx context.Context, device string) (definitions.Controller, bool)

	// Disconnect drops a network device connection. An empty address
	// disconnects all network devices.
	Disconnect(ctx context.Context, address string) bool
}

// InputDispatcher injects touch, key, and text events. Every call runs
// one `adb -s <serial> shell input ...` command and reports success
// from the exit code; nothing is ever raised to the caller.
type InputDispatcher interface {
	Tap(ctx context.Context, c definitions.Controller, x, y, button, durationMS int) bool
	DoubleTap(ctx context.Context, c definitions.Controller, x, y, button, durationMS, intervalMS int) bool
	Swipe(ctx context.Context, c definitions.Controller, x1, y1, x2, y2, durationMS int) bool
	PressKey(ctx context.Context, c definitions.Controller, keycode, durationMS int) bool
	InputText(ctx context.Context, c definitions.Controller, text string) bool
}

// ScreenCapturer grabs the current framebuffer as PNG.
type ScreenCapturer interface {
	// Screencap returns nil on any subprocess failure, timeout, or
	// malformed output.
	Screencap(ctx context.Context, c definitions.Controller) *definitions.ImageResult
}

type Device interface {
	DeviceManager
	InputDispatcher
	ScreenCapturer
}

func CreateDevice(deviceType string) (Device, error) {
	switch deviceType {
	case constants.ADB:
		return &android.ADBDevice{}, nil
	default:
		return nil, fmt.Errorf("unknown device type: %v", deviceType)
	}
}
