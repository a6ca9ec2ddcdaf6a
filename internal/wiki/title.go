package wiki

import (
	"net/url"
	"strings"
)

// titleMarker is the path segment that precedes the article title in
// Wikipedia page URLs.
const titleMarker = "/wiki/"

// ExtractTitle resolves the canonical article title from a Wikipedia page
// URL. It takes the substring after the /wiki/ marker, truncates at the
// first fragment or query delimiter, percent-decodes it, and replaces
// underscores with spaces.
//
// Returns ErrNoTitle when the URL carries no marker or the resolved title
// is empty. No network access, no side effects.
func ExtractTitle(rawURL string) (string, error) {
	_, after, ok := strings.Cut(rawURL, titleMarker)
	if !ok {
		return "", ErrNoTitle
	}

	if i := strings.IndexAny(after, "#?"); i >= 0 {
		after = after[:i]
	}

	decoded, err := url.PathUnescape(after)
	if err != nil {
		// Malformed escapes are kept verbatim rather than rejected,
		// matching how browsers treat them.
		decoded = after
	}

	title := strings.ReplaceAll(decoded, "_", " ")
	if title == "" {
		return "", ErrNoTitle
	}
	return title, nil
}
