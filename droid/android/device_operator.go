package android

import (
	"context"
	"strconv"
	"time"

	"github.com/androidops/droidctl/droid/definitions"
)

const (
	// DefaultPressDurationMS is the press length adb itself produces for
	// a plain `input tap`; anything longer is dispatched as a long press.
	DefaultPressDurationMS = 50

	// DefaultTapIntervalMS is the host-side wait between the two taps of
	// a double tap.
	DefaultTapIntervalMS = 100
)

// Tap touches down and up at (x, y). Durations beyond the default press
// length are sent as a zero-distance swipe, which is how the input tool
// expresses a long press. The button parameter is accepted for surface
// compatibility and ignored; touch screens have one button.
func (r *ADBDevice) Tap(ctx context.Context, c definitions.Controller, x, y, button, durationMS int) bool {
	args := deviceArgs(c.Serial())
	if durationMS > DefaultPressDurationMS {
		args = append(args, "shell", "input", "swipe",
			strconv.Itoa(x), strconv.Itoa(y),
			strconv.Itoa(x), strconv.Itoa(y),
			strconv.Itoa(durationMS))
	} else {
		args = append(args, "shell", "input", "tap", strconv.Itoa(x), strconv.Itoa(y))
	}

	if _, err := r.exec(ctx, inputTimeout, args...); err != nil {
		logFailure("Tap", err)
		return false
	}
	return true
}

// DoubleTap is two sequential taps with a host-side pause in between,
// not an atomic device gesture. The first failure short-circuits; the
// result is true only when both taps succeeded.
func (r *ADBDevice) DoubleTap(ctx context.Context, c definitions.Controller, x, y, button, durationMS, intervalMS int) bool {
	if !r.Tap(ctx, c, x, y, button, durationMS) {
		return false
	}

	time.Sleep(time.Duration(intervalMS) * time.Millisecond)

	return r.Tap(ctx, c, x, y, button, durationMS)
}

// Swipe runs one linear gesture from (x1, y1) to (x2, y2) over
// durationMS milliseconds.
func (r *ADBDevice) Swipe(ctx context.Context, c definitions.Controller, x1, y1, x2, y2, durationMS int) bool {
	args := append(deviceArgs(c.Serial()), "shell", "input", "swipe",
		strconv.Itoa(x1), strconv.Itoa(y1),
		strconv.Itoa(x2), strconv.Itoa(y2),
		strconv.Itoa(durationMS))

	if _, err := r.exec(ctx, inputTimeout, args...); err != nil {
		logFailure("Swipe", err)
		return false
	}
	return true
}

// PressKey dispatches an Android keycode. The input tool has no
// duration argument for keyevent, so long presses are approximated by
// holding the call for the remainder host-side, matching how the
// device-side press registers on input stacks that poll key state.
func (r *ADBDevice) PressKey(ctx context.Context, c definitions.Controller, keycode, durationMS int) bool {
	args := append(deviceArgs(c.Serial()), "shell", "input", "keyevent", strconv.Itoa(keycode))

	if _, err := r.exec(ctx, inputTimeout, args...); err != nil {
		logFailure("PressKey", err)
		return false
	}

	if durationMS > DefaultPressDurationMS {
		time.Sleep(time.Duration(durationMS) * time.Millisecond)
	}
	return true
}

// InputText forwards literal text through `input text`. The text is
// escaped for the device shell first; see escapeText for what still
// cannot be represented.
func (r *ADBDevice) InputText(ctx context.Context, c definitions.Controller, text string) bool {
	args := append(deviceArgs(c.Serial()), "shell", "input", "text", escapeText(text))

	if _, err := r.exec(ctx, inputTimeout, args...); err != nil {
		logFailure("InputText", err)
		return false
	}
	return true
}
