// Package prompt provides interactive terminal prompts.
//
// The grab command asks the user for a page URL, whether to download
// images, and the image limits. Prompter reads from an io.Reader and
// writes to an io.Writer so tests can drive the dialogue without a TTY.
package prompt
