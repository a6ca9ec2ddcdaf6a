// Package report renders the finished grab report as a markdown manifest.
//
// The manifest summarizes one run: which article was grabbed, where the
// content artifacts were written, and what images were saved with their
// dimensions and camera metadata. It lives next to the content files so a
// grab directory is self-describing.
package report
