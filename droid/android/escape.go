package android

import "strings"

// Characters mksh treats specially when they reach the device shell
// unquoted. Spaces are handled separately because `input text` wants
// them spelled as %s.
const shellSpecialChars = "\\'\"`${[|&;<>()*?!~\t\n"

// escapeText prepares text for `adb shell input text`. Spaces become
// %s, and anything the device shell would interpret is single-quoted.
// Non-ASCII characters are passed through untouched: `input text` does
// not accept them on most devices, which is a known limitation of the
// tool rather than of this escaping.
func escapeText(text string) string {
	t := strings.ReplaceAll(text, " ", "%s")
	if t == "" {
		return "''"
	}
	if !strings.ContainsAny(t, shellSpecialChars) {
		return t
	}
	return "'" + strings.ReplaceAll(t, "'", `'\''`) + "'"
}
