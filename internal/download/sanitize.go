package download

import (
	"regexp"

	"golang.org/x/text/unicode/norm"
)

// illegalChars matches characters that are not portable in filenames across
// filesystems.
var illegalChars = regexp.MustCompile(`[\\/*?:"<>|]`)

// SanitizeFilename rewrites a decoded media filename into a filesystem-safe
// one: the name is NFC-normalized (Commons filenames arrive percent-decoded
// and may use decomposed Unicode) and every illegal character is replaced
// with an underscore.
func SanitizeFilename(name string) string {
	return illegalChars.ReplaceAllString(norm.NFC.String(name), "_")
}
