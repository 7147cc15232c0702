package android

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/androidops/droidctl/droid/definitions"
)

// ListDevices runs `adb devices -l` and returns every online device.
// Offline and unauthorized entries are dropped. Any failure, including
// adb missing from PATH, yields an empty slice; a caller cannot tell
// that apart from "nothing attached", which is the documented contract.
func (r *ADBDevice) ListDevices(ctx context.Context) []definitions.DeviceInfo {
	// Warm the server up so a cold adb daemon does not show up as an
	// empty device list. Errors here are irrelevant; `devices` below
	// starts the server too, just with noisier output.
	_, _ = r.exec(ctx, listTimeout, "start-server")

	rawOutput, err := r.exec(ctx, listTimeout, "devices", "-l")
	if err != nil {
		logFailure("ListDevices", err)
		return []definitions.DeviceInfo{}
	}

	devices := parseDeviceList(string(rawOutput))
	return lo.Filter(devices, func(d definitions.DeviceInfo, _ int) bool {
		return d.Online()
	})
}

func parseDeviceList(output string) []definitions.DeviceInfo {
	var devices []definitions.DeviceInfo
	scanner := bufio.NewScanner(strings.NewReader(output))

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "List of devices") || strings.HasPrefix(line, "*") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		serial := parts[0]
		status := parts[1]

		connType := definitions.USB
		if strings.Contains(serial, ":") {
			connType = definitions.Remote
		}

		var model string
		for _, part := range parts[2:] {
			if strings.HasPrefix(part, "model:") {
				model = strings.SplitN(part, ":", 2)[1]
				break
			}
		}

		devices = append(devices, definitions.DeviceInfo{
			Serial:         serial,
			Status:         status,
			ConnectionType: connType,
			Model:          model,
		})
	}

	return devices
}

// Connect validates a device against the current enumeration and hands
// back the serial as a Controller. For ip:port addresses an
// `adb connect` is attempted first. An empty device picks the sole
// online device; with several attached that is ambiguous and fails.
func (r *ADBDevice) Connect(ctx context.Context, device string) (definitions.Controller, bool) {
	if isNetworkAddress(device) {
		if !r.dialNetworkDevice(ctx, device) {
			return "", false
		}
	}

	devices := r.ListDevices(ctx)

	if device == "" {
		if len(devices) != 1 {
			log.Error().Str("kind", string(deviceUnavailable)).Int("count", len(devices)).
				Msg("[Connect] ambiguous device selection")
			return "", false
		}
		return definitions.Controller(devices[0].Serial), true
	}

	for _, d := range devices {
		if d.Serial == device {
			return definitions.Controller(device), true
		}
	}

	log.Error().Str("kind", string(deviceUnavailable)).Str("device", device).
		Msg("[Connect] device not in enumeration")
	return "", false
}

// Disconnect drops a network connection. Empty address means all of
// them. USB devices are unaffected either way.
func (r *ADBDevice) Disconnect(ctx context.Context, address string) bool {
	cmdArgs := []string{"disconnect"}
	if len(address) > 0 {
		cmdArgs = append(cmdArgs, address)
	}

	rawOutput, err := r.exec(ctx, connectTimeout, cmdArgs...)
	if err != nil {
		logFailure("Disconnect", err)
		return false
	}

	log.Debug().Str("output", string(rawOutput)).Msg("[Disconnect] raw output")
	return true
}

func (r *ADBDevice) dialNetworkDevice(ctx context.Context, address string) bool {
	rawOutput, err := r.exec(ctx, connectTimeout, "connect", address)
	if err != nil {
		logFailure("Connect", err)
		return false
	}

	output := strings.ToLower(string(rawOutput))
	if strings.Contains(output, "connected") {
		return true
	}

	logFailure("Connect", fmt.Errorf("%w: %s", errMalformedOutput, strings.TrimSpace(string(rawOutput))))
	return false
}

// isNetworkAddress reports whether a device identifier names a TCP
// endpoint (ip:port) rather than a USB serial. Emulator serials look
// like "emulator-5554" and contain no colon.
func isNetworkAddress(device string) bool {
	host, _, found := strings.Cut(device, ":")
	return found && strings.Contains(host, ".")
}
