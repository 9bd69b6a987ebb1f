package navigator

import (
	"regexp"
	"strconv"
)

// Matches a trailing ":<digits>" line suffix, e.g. "src/main.go:42"
var lineSuffixRe = regexp.MustCompile(`^(.+):(\d+)$`)

// SplitLineSuffix splits an optional trailing line-number suffix off a typed
// path. It returns the path without the suffix and the line number, or the
// input unchanged and 0 when there is no suffix.
func SplitLineSuffix(raw string) (string, int) {
	m := lineSuffixRe.FindStringSubmatch(raw)
	if m == nil {
		return raw, 0
	}
	line, err := strconv.Atoi(m[2])
	if err != nil {
		return raw, 0
	}
	return m[1], line
}
