package commons

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nao1215/wikigrab/internal/webclient"
)

// thumbnailWidths is the fixed descending list of candidate rendition
// widths offered on Commons detail pages.
var thumbnailWidths = []int{1600, 1200, 1000, 800, 600, 400, 300}

// englishPrinter formats widths with digit grouping ("1,600"), the way
// detail pages label their resolution links.
var englishPrinter = message.NewPrinter(language.English)

// Upgrader locates a higher-resolution rendition of a media asset on its
// detail page.
type Upgrader struct {
	// client fetches detail pages with randomized browser headers.
	client *webclient.Client

	// logger reports fetch failures, which are swallowed by contract.
	logger *slog.Logger
}

// UpgraderOption configures an Upgrader.
type UpgraderOption func(*Upgrader)

// WithUpgraderLogger sets the logger.
func WithUpgraderLogger(logger *slog.Logger) UpgraderOption {
	return func(u *Upgrader) {
		u.logger = logger
	}
}

// NewUpgrader creates an Upgrader that fetches detail pages through the
// given client.
func NewUpgrader(client *webclient.Client, opts ...UpgraderOption) *Upgrader {
	u := &Upgrader{client: client}

	for _, opt := range opts {
		opt(u)
	}

	if u.logger == nil {
		u.logger = slog.Default()
	}

	return u
}

// Upgrade looks for a rendition of at least minWidth on the asset's detail
// page. Candidate widths are tried largest first, so the first match is the
// largest available. When no sized rendition matches, the page's designated
// full-image link is the fallback.
//
// Returns an empty string when nothing was found or the fetch failed; the
// caller then falls back to the original thumbnail. This is never an error.
func (u *Upgrader) Upgrade(ctx context.Context, filePageURL string, minWidth int) string {
	resp, err := u.client.Get(ctx, filePageURL)
	if err != nil {
		u.logger.Warn("detail page fetch failed", "url", filePageURL, "error", err)
		return ""
	}
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		u.logger.Warn("detail page could not be parsed", "url", filePageURL, "error", err)
		return ""
	}

	for _, width := range thumbnailWidths {
		if width < minWidth {
			continue
		}
		if href := findSizedRendition(doc, width); href != "" {
			return NormalizeURL(href)
		}
	}

	// No sized rendition matched; fall back to the full-image link.
	if src, ok := doc.Find("div.fullImageLink img").First().Attr("src"); ok && src != "" {
		return NormalizeURL(src)
	}

	return ""
}

// findSizedRendition searches anchors whose visible text names the given
// width in a "<width> × <height> pixels" label and whose target is a
// thumbnail path.
func findSizedRendition(doc *goquery.Document, width int) string {
	label := englishPrinter.Sprintf("%d", width)
	pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(label) + `\b.*pixel`)

	var found string
	doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if !ok || href == "" || !strings.Contains(href, "/thumb/") {
			return true
		}
		if pattern.MatchString(strings.TrimSpace(a.Text())) {
			found = href
			return false
		}
		return true
	})
	return found
}
