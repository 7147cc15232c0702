package android

import (
	"context"
	"errors"
	"testing"
	"time"
)

const devicesOutput = `* daemon not running; starting now at tcp:5037
* daemon started successfully
List of devices attached
emulator-5554          device product:sdk_gphone64_x86_64 model:sdk_gphone64_x86_64 device:emu64x transport_id:1
0123456789ABCDEF       unauthorized transport_id:2
192.168.1.20:5555      device product:raven model:Pixel_6_Pro device:raven transport_id:3
deadbeef               offline transport_id:4
`

// scriptedRunner answers each invocation based on its first argument
// and records every call.
func scriptedRunner(responses map[string]string, errs map[string]error, calls *[][]string) runnerFunc {
	return func(ctx context.Context, timeout time.Duration, args ...string) ([]byte, error) {
		if calls != nil {
			*calls = append(*calls, args)
		}
		key := ""
		if len(args) > 0 {
			key = args[0]
		}
		if err, ok := errs[key]; ok {
			return nil, err
		}
		return []byte(responses[key]), nil
	}
}

func TestListDevices(t *testing.T) {
	dev := &ADBDevice{run: scriptedRunner(map[string]string{"devices": devicesOutput}, nil, nil)}

	devices := dev.ListDevices(context.Background())
	if len(devices) != 2 {
		t.Fatalf("expected 2 online devices, got %d: %v", len(devices), devices)
	}

	if devices[0].Serial != "emulator-5554" {
		t.Errorf("unexpected first serial: %s", devices[0].Serial)
	}
	if devices[0].ConnectionType != "usb" {
		t.Errorf("emulator should be usb, got %s", devices[0].ConnectionType)
	}
	if devices[0].Model != "sdk_gphone64_x86_64" {
		t.Errorf("unexpected model: %s", devices[0].Model)
	}

	if devices[1].Serial != "192.168.1.20:5555" {
		t.Errorf("unexpected second serial: %s", devices[1].Serial)
	}
	if devices[1].ConnectionType != "remote" {
		t.Errorf("ip:port device should be remote, got %s", devices[1].ConnectionType)
	}
	if devices[1].Model != "Pixel_6_Pro" {
		t.Errorf("unexpected model: %s", devices[1].Model)
	}
}

func TestListDevicesEmptyOnNothingAttached(t *testing.T) {
	out := "List of devices attached\n\n"
	dev := &ADBDevice{run: scriptedRunner(map[string]string{"devices": out}, nil, nil)}

	devices := dev.ListDevices(context.Background())
	if len(devices) != 0 {
		t.Errorf("expected empty slice, got %v", devices)
	}
}

func TestListDevicesEmptyOnCommandFailure(t *testing.T) {
	dev := &ADBDevice{run: scriptedRunner(nil, map[string]error{"devices": errors.New("exit status 1")}, nil)}

	devices := dev.ListDevices(context.Background())
	if devices == nil || len(devices) != 0 {
		t.Errorf("expected non-nil empty slice, got %#v", devices)
	}
}

func TestConnectKnownDevice(t *testing.T) {
	dev := &ADBDevice{run: scriptedRunner(map[string]string{"devices": devicesOutput}, nil, nil)}

	controller, ok := dev.Connect(context.Background(), "emulator-5554")
	if !ok {
		t.Fatal("expected connect to succeed")
	}
	if controller.Serial() != "emulator-5554" {
		t.Errorf("controller should equal the validated serial, got %s", controller.Serial())
	}
}

func TestConnectUnknownDevice(t *testing.T) {
	dev := &ADBDevice{run: scriptedRunner(map[string]string{"devices": devicesOutput}, nil, nil)}

	if _, ok := dev.Connect(context.Background(), "no-such-serial"); ok {
		t.Error("expected connect to fail for an absent device")
	}
}

func TestConnectOfflineDevice(t *testing.T) {
	dev := &ADBDevice{run: scriptedRunner(map[string]string{"devices": devicesOutput}, nil, nil)}

	// Present in the raw listing but not online.
	if _, ok := dev.Connect(context.Background(), "deadbeef"); ok {
		t.Error("expected connect to fail for an offline device")
	}
}

func TestConnectAutoSelect(t *testing.T) {
	out := "List of devices attached\nemulator-5554\tdevice\n"
	dev := &ADBDevice{run: scriptedRunner(map[string]string{"devices": out}, nil, nil)}

	controller, ok := dev.Connect(context.Background(), "")
	if !ok || controller.Serial() != "emulator-5554" {
		t.Errorf("expected auto-select of the sole device, got %q ok=%v", controller, ok)
	}
}

func TestConnectAutoSelectAmbiguous(t *testing.T) {
	dev := &ADBDevice{run: scriptedRunner(map[string]string{"devices": devicesOutput}, nil, nil)}

	// Two online devices attached; auto-selection must refuse to pick.
	if _, ok := dev.Connect(context.Background(), ""); ok {
		t.Error("expected ambiguous auto-select to fail")
	}
}

func TestConnectNetworkDeviceDials(t *testing.T) {
	var calls [][]string
	responses := map[string]string{
		"connect": "connected to 192.168.1.20:5555",
		"devices": devicesOutput,
	}
	dev := &ADBDevice{run: scriptedRunner(responses, nil, &calls)}

	controller, ok := dev.Connect(context.Background(), "192.168.1.20:5555")
	if !ok {
		t.Fatal("expected network connect to succeed")
	}
	if controller.Serial() != "192.168.1.20:5555" {
		t.Errorf("unexpected controller: %s", controller)
	}

	if len(calls) == 0 || calls[0][0] != "connect" {
		t.Errorf("expected adb connect to run first, calls: %v", calls)
	}
}

func TestConnectNetworkDeviceRefused(t *testing.T) {
	responses := map[string]string{
		"connect": "failed to connect to '10.0.0.9:5555': Connection refused",
		"devices": devicesOutput,
	}
	dev := &ADBDevice{run: scriptedRunner(responses, nil, nil)}

	if _, ok := dev.Connect(context.Background(), "10.0.0.9:5555"); ok {
		t.Error("expected refused dial to fail")
	}
}

func TestDisconnect(t *testing.T) {
	var calls [][]string
	dev := &ADBDevice{run: scriptedRunner(map[string]string{"disconnect": "disconnected everything"}, nil, &calls)}

	if !dev.Disconnect(context.Background(), "") {
		t.Error("expected disconnect-all to succeed")
	}
	if len(calls) != 1 || len(calls[0]) != 1 {
		t.Errorf("disconnect-all should pass no address, calls: %v", calls)
	}

	calls = nil
	if !dev.Disconnect(context.Background(), "192.168.1.20:5555") {
		t.Error("expected targeted disconnect to succeed")
	}
	if len(calls) != 1 || len(calls[0]) != 2 || calls[0][1] != "192.168.1.20:5555" {
		t.Errorf("unexpected disconnect args: %v", calls)
	}
}

func TestIsNetworkAddress(t *testing.T) {
	cases := []struct {
		device string
		want   bool
	}{
		{"192.168.1.20:5555", true},
		{"10.0.0.1:5037", true},
		{"emulator-5554", false},
		{"0123456789ABCDEF", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := isNetworkAddress(tc.device); got != tc.want {
			t.Errorf("isNetworkAddress(%q) = %v, want %v", tc.device, got, tc.want)
		}
	}
}
