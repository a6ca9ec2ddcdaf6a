// Package pipeline orchestrates the grab workflow as an ordered sequence
// of steps sharing a single report.
//
// The content path (resolve, fetch, render, save) and the image path
// (locate, download) run as one pipeline. A fetch failure is recorded in
// the report and the image path still runs; only a title resolution
// failure aborts the whole run, because nothing downstream can work
// without a title.
package pipeline
