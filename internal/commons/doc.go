// Package commons discovers media assets on Wikimedia Commons for an
// article title. Discovery is two-tiered: a category listing page is
// scraped first, and a media search page is the fallback when the category
// does not exist or yields nothing. Each tier scans the page with an
// ordered list of named strategies so markup-shape changes on the site can
// be handled by adding a strategy rather than nesting conditionals.
package commons
