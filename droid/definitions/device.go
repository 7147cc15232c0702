package definitions

import "encoding/base64"

type ConnectionType string

const (
	USB    ConnectionType = "usb"
	Remote ConnectionType = "remote"
)

// Controller is a device serial that has been validated against the
// current `adb devices` output. It is a distinct type so an unvalidated
// serial string cannot be passed to an input or capture operation
// without going through Connect first. It is not a session handle;
// nothing is held open on the device.
type Controller string

func (c Controller) Serial() string {
	return string(c)
}

type DeviceInfo struct {
	Serial         string         `json:"serial"`
	Status         string         `json:"status"`
	ConnectionType ConnectionType `json:"connection_type"`
	Model          string         `json:"model,omitempty"`
}

// Online reports whether the device is ready to accept commands.
// Offline and unauthorized devices show up in `adb devices` output but
// reject everything.
func (d DeviceInfo) Online() bool {
	return d.Status == "device"
}

// ImageResult holds one captured screenshot. Data is the base64-encoded
// PNG payload as produced by screencap; Width and Height come from the
// PNG header. A fresh value is built on every capture, nothing is cached.
type ImageResult struct {
	Data   string `json:"data"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Decode returns the raw PNG bytes behind Data.
func (r *ImageResult) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(r.Data)
}
