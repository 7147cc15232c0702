package constants

// Device type for the CreateDevice factory.
const (
	ADB = "adb"
)

// Android keycodes accepted by `input keyevent`. Only the ones commonly
// used for navigation and hardware buttons; any other integer keycode
// is forwarded to the device as-is.
const (
	KeycodeHome       = 3
	KeycodeBack       = 4
	KeycodeVolumeUp   = 24
	KeycodeVolumeDown = 25
	KeycodePower      = 26
	KeycodeEnter      = 66
	KeycodeDel        = 67
	KeycodeMenu       = 82
)
