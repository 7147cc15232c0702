package droid

import (
	"testing"

	"github.com/androidops/droidctl/constants"
)

func TestCreateDevice(t *testing.T) {
	device, err := CreateDevice(constants.ADB)
	if err != nil {
		t.Fatalf("CreateDevice(adb): %v", err)
	}
	if device == nil {
		t.Fatal("CreateDevice(adb) returned nil device")
	}

	if _, err := CreateDevice("webos"); err == nil {
		t.Error("expected an error for an unknown device type")
	}
}
