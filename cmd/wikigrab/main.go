// Package main provides the entry point for the wikigrab CLI.
//
// wikigrab downloads Wikipedia article content as plain text and fetches
// related images from Wikimedia Commons at the best available resolution.
//
// Usage:
//
//	wikigrab grab <wikipedia-url>
//	wikigrab narrate script.txt
//
// See --help for all available options.
package main

// main is the entry point for wikigrab.
func main() {
	Execute()
}
