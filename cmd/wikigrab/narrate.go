package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/nao1215/wikigrab/internal/config"
	"github.com/nao1215/wikigrab/internal/log"
	"github.com/nao1215/wikigrab/internal/narrate"
	"github.com/spf13/cobra"
)

// NewNarrateCmd creates the narrate command.
func NewNarrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "narrate [script-file]",
		Short: "Convert a text file to narrated MP3 audio",
		Long: `Narrate reads a text file and synthesizes it into MP3 audio using the
ElevenLabs text-to-speech API.

The API key is read from the ` + config.APIKeyEnv + ` environment variable,
or from the narrate section of the config file.

Examples:
  # Narrate the default script file
  wikigrab narrate

  # Narrate a grabbed article
  wikigrab narrate wiki_content.txt -o article.mp3`,
		Args: cobra.MaximumNArgs(1),
		RunE: runNarrateCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultNarrateOutput,
		"Path for the MP3 output")
	cmd.Flags().String("voice", "",
		"Voice ID to use (default: built-in narration voice)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .wikigrab in current or XDG config directory)")

	return cmd
}

// runNarrateCmd executes the narrate command.
func runNarrateCmd(cmd *cobra.Command, args []string) error {
	logger := log.NewLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	inputPath := config.DefaultNarrateInput
	if len(args) > 0 {
		inputPath = args[0]
	}

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	voiceFlag, err := cmd.Flags().GetString("voice")
	if err != nil {
		return err
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	narrateCfg, err := loadNarrateConfig(configPath)
	if err != nil {
		return err
	}

	// Environment wins over the config file for the API key
	apiKey := os.Getenv(config.APIKeyEnv)
	if apiKey == "" {
		apiKey = narrateCfg.APIKey
	}
	if apiKey == "" {
		return narrate.ErrMissingAPIKey
	}

	opts := []narrate.ClientOption{narrate.WithNarrateLogger(logger)}
	if narrateCfg.Endpoint != "" {
		opts = append(opts, narrate.WithNarrateEndpoint(narrateCfg.Endpoint))
	}
	if narrateCfg.ModelID != "" {
		opts = append(opts, narrate.WithModelID(narrateCfg.ModelID))
	}
	switch {
	case voiceFlag != "":
		opts = append(opts, narrate.WithVoiceID(voiceFlag))
	case narrateCfg.VoiceID != "":
		opts = append(opts, narrate.WithVoiceID(narrateCfg.VoiceID))
	}

	settings := narrate.DefaultVoiceSettings()
	if narrateCfg.Stability > 0 {
		settings.Stability = narrateCfg.Stability
	}
	if narrateCfg.SimilarityBoost > 0 {
		settings.SimilarityBoost = narrateCfg.SimilarityBoost
	}
	if narrateCfg.Style > 0 {
		settings.Style = narrateCfg.Style
	}
	if narrateCfg.Speed > 0 {
		settings.Speed = narrateCfg.Speed
	}

	text, err := os.ReadFile(inputPath) //nolint:gosec // path comes from the user's own argument
	if err != nil {
		return fmt.Errorf("failed to read script file %s: %w", inputPath, err)
	}
	if len(text) == 0 {
		return fmt.Errorf("script file %s is empty", inputPath)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Synthesizing narration...")
	audio, err := narrate.NewClient(apiKey, opts...).Synthesize(cmd.Context(), string(text), settings)
	if err != nil {
		return fmt.Errorf("narration failed: %w", err)
	}

	if err := os.WriteFile(outputPath, audio, 0600); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Narration saved to %s\n", outputPath)
	return nil
}

// loadNarrateConfig loads the narrate section of the config file. A missing
// file yields the zero config unless the user named one explicitly.
func loadNarrateConfig(explicit string) (config.NarrateConfig, error) {
	path, err := config.FindConfigFile(explicit)
	if errors.Is(err, config.ErrConfigNotFound) {
		return config.NarrateConfig{}, nil
	}
	if err != nil {
		return config.NarrateConfig{}, err
	}

	file, err := config.LoadConfigFile(path)
	if err != nil {
		return config.NarrateConfig{}, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return file.Narrate, nil
}
