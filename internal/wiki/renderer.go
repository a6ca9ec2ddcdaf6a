package wiki

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/nao1215/wikigrab/internal/model"
)

// FailurePlaceholder is returned as the whole document when the content
// tree carries no parsable markup.
const FailurePlaceholder = "Failed to retrieve page content"

// removalSelectors matches presentational artifacts that are excised before
// rendering: edit-section links, reference markers, empty elements, no-print
// elements, and message-box images.
const removalSelectors = ".mw-editsection, .reference, .mw-empty-elt, .noprint, .mbox-image"

// blockSelector matches the block-level elements rendered as text, in
// document order.
const blockSelector = "p, h1, h2, h3, h4, h5, h6, ul, ol, table"

// excludedAncestorMarkers lists class-attribute substrings that mark
// navigation chrome. Any block with an ancestor carrying one of these is
// skipped entirely.
var excludedAncestorMarkers = []string{"toc", "sidebar", "navbox", "vertical-navbox"}

// editMarkerPattern matches the bracketed "[edit]" marker MediaWiki prefixes
// to heading text when edit sections are enabled.
var editMarkerPattern = regexp.MustCompile(`^\[\s*edit\s*\]`)

// Render converts a content tree into a normalized plain-text document.
// The secondary return value is the original raw article HTML; it is empty
// when rendering failed.
//
// Block order follows document order strictly; blocks are never reordered
// or deduplicated. Output blocks are joined by a single blank line and the
// result is trimmed.
func Render(tree *model.ContentTree) (string, string) {
	if !tree.HasMarkup() {
		return FailurePlaceholder, ""
	}

	rawHTML := tree.Text.Value
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return FailurePlaceholder, ""
	}

	doc.Find(removalSelectors).Remove()

	blocks := make([]string, 0, 32)
	blocks = append(blocks, "# "+displayTitle(tree))

	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		if len(s.Nodes) == 0 || hasExcludedAncestor(s.Nodes[0], excludedAncestorMarkers) {
			return
		}
		if block, ok := renderBlock(s); ok {
			blocks = append(blocks, block)
		}
	})

	if len(tree.Categories) > 0 {
		blocks = append(blocks, renderCategories(tree.Categories))
	}
	if len(tree.ExternalLinks) > 0 {
		blocks = append(blocks, renderExternalLinks(tree.ExternalLinks))
	}

	return strings.TrimSpace(strings.Join(blocks, "\n\n")), rawHTML
}

// renderBlock converts one block-level element into its text form.
// The second return value is false when the block renders to nothing
// (e.g. an empty paragraph).
func renderBlock(s *goquery.Selection) (string, bool) {
	name := goquery.NodeName(s)
	switch {
	case headingLevel(name) > 0:
		text := strings.TrimSpace(s.Text())
		text = strings.TrimSpace(editMarkerPattern.ReplaceAllString(text, ""))
		return strings.Repeat("#", headingLevel(name)) + " " + text, true

	case name == "p":
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return "", false
		}
		return text, true

	case name == "ul" || name == "ol":
		// Only direct child items are rendered; nested lists are not
		// separately indented.
		items := make([]string, 0)
		s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
			items = append(items, "- "+strings.TrimSpace(li.Text()))
		})
		if len(items) == 0 {
			return "", false
		}
		return strings.Join(items, "\n"), true

	case name == "table":
		// Tabular data is never rendered as text, only named.
		caption := strings.TrimSpace(s.Find("caption").First().Text())
		if caption != "" {
			return "[Table: " + caption + "]", true
		}
		return "[Table content]", true
	}

	return "", false
}

// renderCategories builds the trailing Categories section. The Category:
// namespace prefix is stripped from each name.
func renderCategories(categories []model.Category) string {
	lines := make([]string, 0, len(categories)+1)
	lines = append(lines, "## Categories")
	for _, cat := range categories {
		lines = append(lines, "- "+strings.ReplaceAll(cat.Name, "Category:", ""))
	}
	return strings.Join(lines, "\n")
}

// renderExternalLinks builds the trailing External Links section. Links are
// listed verbatim.
func renderExternalLinks(links []string) string {
	lines := make([]string, 0, len(links)+1)
	lines = append(lines, "## External Links")
	for _, link := range links {
		lines = append(lines, "- "+link)
	}
	return strings.Join(lines, "\n")
}

// displayTitle resolves the document heading. The API's display title may
// carry embedded markup (italics, formulas) that is stripped to plain text.
func displayTitle(tree *model.ContentTree) string {
	raw := tree.DisplayTitle
	if raw == "" {
		raw = tree.Title
	}
	if raw == "" {
		return "Untitled"
	}

	stripped, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}
	return strings.TrimSpace(stripped.Text())
}

// headingLevel returns the level for h1..h6 element names, or 0 for
// anything else.
func headingLevel(name string) int {
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 0
}

// hasExcludedAncestor walks the node's ancestry and reports whether any
// ancestor's class attribute contains one of the marker substrings. The
// predicate works directly on the parsed node tree so it stays independent
// of the selection library.
func hasExcludedAncestor(n *html.Node, markers []string) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		class := attrValue(p, "class")
		if class == "" {
			continue
		}
		for _, marker := range markers {
			if strings.Contains(class, marker) {
				return true
			}
		}
	}
	return false
}

// attrValue returns the named attribute of an HTML node, or empty.
func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
