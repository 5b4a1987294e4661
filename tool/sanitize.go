package tool

import (
	"regexp"
	"strings"
)

// Error messages cross the trust boundary between tool internals and the
// model/user. The sanitizer strips anything that looks like a stack frame,
// a SQL fragment or a filesystem path, then caps the length.
var (
	stackFramePattern    = regexp.MustCompile(`(?i)at .*?\(.*?\)`)
	goroutinePattern     = regexp.MustCompile(`(?m)goroutine \d+ \[[^\]]*\]:.*$`)
	sourceRefPattern     = regexp.MustCompile(`\S+\.go:\d+(?: \+0x[0-9a-f]+)?`)
	sqlFragmentPattern   = regexp.MustCompile(`(?i)sql.*?:`)
	windowsPathPattern   = regexp.MustCompile(`[A-Za-z]:\\.*`)
	unixPathPattern      = regexp.MustCompile(`/[a-z/]+/.*`)
	collapseSpacePattern = regexp.MustCompile(`\s+`)
)

const maxSanitizedLength = 200

// SanitizeErrorMessage strips stack-trace-shaped lines, SQL fragments and
// filesystem paths from an error message and caps it at 200 characters.
// An empty result becomes a generic failure message.
func SanitizeErrorMessage(message string) string {
	if message == "" {
		return "Unknown error"
	}

	sanitized := stackFramePattern.ReplaceAllString(message, "")
	sanitized = goroutinePattern.ReplaceAllString(sanitized, "")
	sanitized = sourceRefPattern.ReplaceAllString(sanitized, "")
	sanitized = sqlFragmentPattern.ReplaceAllString(sanitized, "")
	sanitized = windowsPathPattern.ReplaceAllString(sanitized, "")
	sanitized = unixPathPattern.ReplaceAllString(sanitized, "")
	sanitized = strings.TrimSpace(collapseSpacePattern.ReplaceAllString(sanitized, " "))

	if len(sanitized) > maxSanitizedLength {
		sanitized = sanitized[:maxSanitizedLength] + "..."
	}

	if sanitized == "" {
		return "Operation failed"
	}
	return sanitized
}
