package commons

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nao1215/wikigrab/internal/model"
	"github.com/nao1215/wikigrab/internal/webclient"
)

// DefaultOrigin is the Wikimedia Commons site origin.
const DefaultOrigin = "https://commons.wikimedia.org"

// Locator finds candidate media assets for a page title. It returns address
// metadata only; no image bytes are fetched here.
type Locator struct {
	// origin is the Commons site origin, used to build listing addresses
	// and to absolutize relative detail-page paths.
	origin string

	// client fetches listing pages with randomized browser headers.
	client *webclient.Client

	// logger reports strategy hits and per-tier failures.
	logger *slog.Logger
}

// LocatorOption configures a Locator.
type LocatorOption func(*Locator)

// WithOrigin points the locator at a different site origin. Tests use this
// to target a local server.
func WithOrigin(origin string) LocatorOption {
	return func(l *Locator) {
		l.origin = strings.TrimSuffix(origin, "/")
	}
}

// WithLocatorLogger sets the logger.
func WithLocatorLogger(logger *slog.Logger) LocatorOption {
	return func(l *Locator) {
		l.logger = logger
	}
}

// NewLocator creates a Locator that fetches pages through the given client.
func NewLocator(client *webclient.Client, opts ...LocatorOption) *Locator {
	l := &Locator{
		origin: DefaultOrigin,
		client: client,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.logger == nil {
		l.logger = slog.Default()
	}

	return l
}

// scanStrategy is one named way of recognizing media items in a listing
// page. Strategies exist because Commons has shipped several generations of
// gallery and search-result markup.
type scanStrategy struct {
	// name identifies the strategy in logs.
	name string

	// scan extracts up to max descriptors from the document.
	scan func(l *Locator, doc *goquery.Document, max int) []model.ImageDescriptor
}

// categoryStrategies scan a category listing page. The gallery strategy is
// primary; generic thumbnail containers supplement it when the gallery
// yields fewer items than requested.
var categoryStrategies = []scanStrategy{
	{name: "gallery", scan: scanGallery},
	{name: "thumbnails", scan: scanThumbnails},
}

// searchStrategies scan a media search results page. The legacy strategy
// runs only when the modern one finds nothing at all.
var searchStrategies = []scanStrategy{
	{name: "media-search", scan: scanSearchResults},
	{name: "legacy-search", scan: scanLegacyResults},
}

// Locate finds up to max media assets for the title. Tier 1 scrapes the
// parallel Commons category; when it was redirected to a search page,
// returned a non-2xx status, failed at the transport level, or yielded zero
// images, Tier 2 scrapes a media search instead.
//
// Results keep tier order, then in-page order. Failures are logged and never
// propagated; an empty slice means nothing was found.
func (l *Locator) Locate(ctx context.Context, title string, max int) []model.ImageDescriptor {
	if max <= 0 {
		return nil
	}

	if images := l.fromCategory(ctx, title, max); len(images) > 0 {
		return images
	}
	return l.fromSearch(ctx, title, max)
}

// fromCategory is Tier 1: scrape the category listing page named after the
// article title.
func (l *Locator) fromCategory(ctx context.Context, title string, max int) []model.ImageDescriptor {
	categoryURL := l.origin + "/wiki/Category:" + strings.ReplaceAll(title, " ", "_")
	l.logger.Info("fetching images from category listing", "url", categoryURL)

	resp, err := l.client.Get(ctx, categoryURL)
	if err != nil {
		l.logger.Warn("category fetch failed", "url", categoryURL, "error", err)
		return nil
	}

	// A redirect to the search page means the category does not exist.
	if strings.Contains(resp.FinalURL, "Special:Search") {
		l.logger.Info("category does not exist", "url", categoryURL)
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		l.logger.Warn("category page returned unexpected status",
			"url", categoryURL, "status", resp.StatusCode)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		l.logger.Warn("category page could not be parsed", "url", categoryURL, "error", err)
		return nil
	}

	return l.accumulate(doc, categoryStrategies, max)
}

// fromSearch is Tier 2: scrape a Commons media search for the title.
func (l *Locator) fromSearch(ctx context.Context, title string, max int) []model.ImageDescriptor {
	searchURL := l.origin + "/w/index.php?search=" + url.QueryEscape(title) +
		"&title=Special:MediaSearch&type=image"
	l.logger.Info("trying media search", "url", searchURL)

	resp, err := l.client.Get(ctx, searchURL)
	if err != nil {
		l.logger.Warn("media search failed", "url", searchURL, "error", err)
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		l.logger.Warn("media search returned unexpected status",
			"url", searchURL, "status", resp.StatusCode)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		l.logger.Warn("search page could not be parsed", "url", searchURL, "error", err)
		return nil
	}

	return l.firstMatch(doc, searchStrategies, max)
}

// accumulate runs strategies in order, letting later strategies top up the
// result until max items are collected.
func (l *Locator) accumulate(doc *goquery.Document, strategies []scanStrategy, max int) []model.ImageDescriptor {
	images := make([]model.ImageDescriptor, 0, max)
	for _, st := range strategies {
		if len(images) >= max {
			break
		}
		found := st.scan(l, doc, max-len(images))
		if len(found) > 0 {
			l.logger.Debug("scan strategy matched", "strategy", st.name, "count", len(found))
		}
		images = append(images, found...)
	}
	return images
}

// firstMatch runs strategies in order and returns the first non-empty
// result.
func (l *Locator) firstMatch(doc *goquery.Document, strategies []scanStrategy, max int) []model.ImageDescriptor {
	for _, st := range strategies {
		if found := st.scan(l, doc, max); len(found) > 0 {
			l.logger.Debug("scan strategy matched", "strategy", st.name, "count", len(found))
			return found
		}
	}
	return nil
}

// scanGallery extracts items from the standard category gallery markup.
func scanGallery(l *Locator, doc *goquery.Document, max int) []model.ImageDescriptor {
	images := make([]model.ImageDescriptor, 0, max)
	doc.Find("ul.gallery li.gallerybox").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		if len(images) >= max {
			return false
		}
		if d, ok := l.descriptorFrom(li); ok {
			images = append(images, d)
		}
		return true
	})
	return images
}

// scanThumbnails extracts items from generic thumbnail containers.
func scanThumbnails(l *Locator, doc *goquery.Document, max int) []model.ImageDescriptor {
	images := make([]model.ImageDescriptor, 0, max)
	doc.Find("div.thumb").EachWithBreak(func(_ int, div *goquery.Selection) bool {
		if len(images) >= max {
			return false
		}
		if d, ok := l.descriptorFrom(div); ok {
			images = append(images, d)
		}
		return true
	})
	return images
}

// scanSearchResults extracts items from the modern MediaSearch result
// markup, where each result is an anchor wrapping its thumbnail.
func scanSearchResults(l *Locator, doc *goquery.Document, max int) []model.ImageDescriptor {
	images := make([]model.ImageDescriptor, 0, max)
	doc.Find("a.sdms-image-result").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if len(images) >= max {
			return false
		}
		href, okHref := a.Attr("href")
		src, okSrc := a.Find("img").First().Attr("src")
		if okHref && okSrc {
			images = append(images, l.newDescriptor(src, href))
		}
		return true
	})
	return images
}

// scanLegacyResults extracts items from the older search result blocks.
func scanLegacyResults(l *Locator, doc *goquery.Document, max int) []model.ImageDescriptor {
	images := make([]model.ImageDescriptor, 0, max)
	doc.Find("div.searchResultImage").EachWithBreak(func(_ int, div *goquery.Selection) bool {
		if len(images) >= max {
			return false
		}
		href, okHref := div.Find("a").First().Attr("href")
		src, okSrc := div.Find("img").First().Attr("src")
		if okHref && okSrc {
			images = append(images, l.newDescriptor(src, href))
		}
		return true
	})
	return images
}

// descriptorFrom extracts the thumbnail and detail-page addresses from a
// gallery or thumbnail container.
func (l *Locator) descriptorFrom(container *goquery.Selection) (model.ImageDescriptor, bool) {
	src, okSrc := container.Find("img").First().Attr("src")
	href, okHref := container.Find("a.image").First().Attr("href")
	if !okSrc || !okHref {
		return model.ImageDescriptor{}, false
	}
	return l.newDescriptor(src, href), true
}

// newDescriptor normalizes the extracted addresses and derives the filename
// from the detail-page address. The filename stays unsanitized until
// download time.
func (l *Locator) newDescriptor(thumbURL, filePage string) model.ImageDescriptor {
	thumbURL = NormalizeURL(thumbURL)
	if !strings.HasPrefix(filePage, "http") {
		filePage = l.origin + filePage
	}
	return model.ImageDescriptor{
		Filename:     filenameFrom(filePage),
		ThumbnailURL: thumbURL,
		FilePageURL:  filePage,
	}
}

// filenameFrom derives the decoded media filename from the final path
// segment of a detail-page address.
func filenameFrom(filePage string) string {
	segment := filePage[strings.LastIndex(filePage, "/")+1:]
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return segment
	}
	return decoded
}

// NormalizeURL absolutizes a protocol-relative address by prefixing https.
func NormalizeURL(addr string) string {
	if strings.HasPrefix(addr, "http") {
		return addr
	}
	return "https:" + addr
}
