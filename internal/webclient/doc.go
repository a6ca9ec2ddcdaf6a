// Package webclient provides the HTTP client used for scraping Wikimedia
// Commons pages. Every request carries a rotating User-Agent and a fixed set
// of browser-like headers, because Commons throttles clients that look like
// bots. The random source is injectable so tests can fix the rotation.
package webclient
