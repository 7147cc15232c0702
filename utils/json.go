package utils

import (
	json "github.com/bytedance/sonic"
)

// JsonString renders obj compactly, swallowing marshal errors into an
// empty string. Good enough for log lines and CLI output.
func JsonString(obj any) string {
	jsonStr, _ := json.Marshal(obj)
	return string(jsonStr)
}

// JsonIndent is JsonString with two-space indentation.
func JsonIndent(obj any) string {
	jsonStr, _ := json.MarshalIndent(obj, "", "  ")
	return string(jsonStr)
}
