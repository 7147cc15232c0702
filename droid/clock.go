package droid

import "time"

const clockLayout = "2006-01-02 15:04:05"

// Now returns the host's current local time as "YYYY-MM-DD HH:MM:SS".
// It touches no device and never fails.
func Now() string {
	return time.Now().Format(clockLayout)
}
