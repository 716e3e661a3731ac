package typewriter

import "regexp"

// Cursor is appended to a message while it is being revealed.
const Cursor = "▋"

var enumerationRegexp = regexp.MustCompile(`(\S)[ \t]+(\d+\.[ \t])`)

// Format puts every enumerated list marker ("1. ", "12. ") that follows other text on its own line.
func Format(text string) string {
	return enumerationRegexp.ReplaceAllString(text, "$1\n$2")
}
