// Package wiki implements the Wikipedia content path: resolving an article
// title from a page URL, fetching the structured content tree through the
// MediaWiki parse API, and rendering it into a normalized plain-text
// document with the raw article HTML as a secondary output.
package wiki
