// Package model defines the data structures shared across wikigrab:
// the content tree returned by the MediaWiki parse API, image descriptors
// discovered on Wikimedia Commons, and the grab report that accumulates
// results as the pipeline runs.
package model
