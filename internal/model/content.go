package model

import "strings"

// ContentTree is the structured article document returned by the MediaWiki
// parse API. It is produced by the content fetcher and consumed once by the
// renderer; nothing retains it after rendering.
//
// Design decision: We model only the response members the renderer needs
// rather than the full API surface. The parse API returns many more members
// (langlinks, properties, parse warnings) that this tool never reads.
type ContentTree struct {
	// Title is the canonical page title.
	Title string `json:"title"`

	// PageID is the numeric page identifier.
	PageID int `json:"pageid"`

	// DisplayTitle is the title as rendered on the page. It may contain
	// embedded HTML markup (italics, formulas) that must be stripped
	// before display.
	DisplayTitle string `json:"displaytitle"`

	// Text holds the rendered article HTML.
	Text RawText `json:"text"`

	// Sections is the flat list of section descriptors.
	Sections []Section `json:"sections"`

	// Categories lists the categories the page belongs to.
	Categories []Category `json:"categories"`

	// ExternalLinks lists external link targets verbatim.
	ExternalLinks []string `json:"externallinks"`
}

// HasMarkup reports whether the tree carries parsable article HTML.
func (t *ContentTree) HasMarkup() bool {
	return t != nil && strings.TrimSpace(t.Text.Value) != ""
}

// RawText wraps API members whose payload lives under the legacy "*" key,
// e.g. "text": {"*": "<div>...</div>"}.
type RawText struct {
	Value string `json:"*"`
}

// Section describes one entry of the article's section list.
type Section struct {
	// TocLevel is the nesting level in the table of contents.
	TocLevel int `json:"toclevel"`

	// Level is the HTML heading level as a string ("2" for h2).
	Level string `json:"level"`

	// Line is the section title.
	Line string `json:"line"`

	// Index is the section's ordinal position, as reported by the API.
	Index string `json:"index"`

	// Anchor is the URL fragment for the section.
	Anchor string `json:"anchor"`
}

// Category is one category membership of the page. The category name lives
// under the legacy "*" key and is reported without a namespace prefix by
// newer API versions, but may carry a "Category:" prefix from older ones.
type Category struct {
	// SortKey is the category sort key, usually empty.
	SortKey string `json:"sortkey"`

	// Name is the category name.
	Name string `json:"*"`
}
