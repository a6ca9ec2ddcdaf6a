// Package narrate converts text to speech through the ElevenLabs API.
//
// It exists for the narrate subcommand, which reads a script file and
// writes MP3 audio. The API key comes from the environment or the config
// file; the log package redacts it from all output.
package narrate
