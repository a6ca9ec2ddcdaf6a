package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nao1215/wikigrab/internal/commons"
	"github.com/nao1215/wikigrab/internal/config"
	"github.com/nao1215/wikigrab/internal/download"
	"github.com/nao1215/wikigrab/internal/log"
	"github.com/nao1215/wikigrab/internal/model"
	"github.com/nao1215/wikigrab/internal/pipeline"
	"github.com/nao1215/wikigrab/internal/prompt"
	"github.com/nao1215/wikigrab/internal/report"
	"github.com/nao1215/wikigrab/internal/webclient"
	"github.com/nao1215/wikigrab/internal/wiki"
	"github.com/spf13/cobra"
)

// NewGrabCmd creates the grab command.
func NewGrabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grab [wikipedia-url]",
		Short: "Download a Wikipedia article and its Commons images",
		Long: `Grab downloads a Wikipedia article as a plain-text document and fetches
related images from Wikimedia Commons at the best available resolution.

It resolves the article title from the URL, retrieves the parsed content
through the MediaWiki API, and renders it as structured plain text. When
image download is enabled, it looks for a matching Commons category first
and falls back to MediaSearch, then upgrades each thumbnail to the largest
rendition meeting the minimum width.

Examples:
  # Interactive session (prompts for URL and image options)
  wikigrab grab

  # Grab a specific article
  wikigrab grab https://en.wikipedia.org/wiki/Gravity

  # Custom output locations
  wikigrab grab -t article.txt -i pics https://en.wikipedia.org/wiki/Gravity

Configuration file (.wikigrab) example:
  user_agents:
    - "Mozilla/5.0 (X11; Linux x86_64) ..."
  referer: "https://commons.wikimedia.org/"
  api_endpoint: "https://en.wikipedia.org/w/api.php"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGrabCmd,
	}

	// Output flags
	cmd.Flags().StringP("text-output", "t", config.DefaultTextFile,
		"Path for the plain-text article")
	cmd.Flags().String("html-output", config.DefaultHTMLFile,
		"Path for the raw article HTML (empty to skip)")
	cmd.Flags().StringP("image-dir", "i", config.DefaultImageDir,
		"Folder for downloaded images")
	cmd.Flags().StringP("manifest", "m", config.DefaultManifestFile,
		"Path for the markdown run manifest (empty to skip)")

	// Behavior flags
	cmd.Flags().DurationP("timeout", "T", config.DefaultTimeout,
		"HTTP timeout for each request")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .wikigrab in current or XDG config directory)")

	return cmd
}

// runGrabCmd executes the grab command.
func runGrabCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags and the optional config file
	cfg, err := buildGrabConfig(cmd)
	if err != nil {
		return err
	}

	// Set up structured logging with secret redaction
	verbose := getVerboseFlag(cmd)
	cfg.Verbose = verbose
	logger := log.NewLogger(os.Stderr, verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	// Interactive prompts fill in what flags and args did not provide
	prompter := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())

	sourceURL := ""
	if len(args) > 0 {
		sourceURL = args[0]
	}
	if sourceURL == "" {
		sourceURL = prompter.Line("Enter the Wikipedia URL: ")
	}
	if sourceURL == "" {
		return errors.New("no Wikipedia URL provided")
	}

	grabReport := model.NewGrabReport(sourceURL)
	grabReport.DownloadImages = prompter.YesNo("Do you want to download images? (y/n): ")
	if grabReport.DownloadImages {
		cfg.MaxImages = prompter.IntOrDefault(
			fmt.Sprintf("Maximum number of images to download (default %d): ", cfg.MaxImages),
			cfg.MaxImages,
		)
		cfg.MinWidth = prompter.IntOrDefault(
			fmt.Sprintf("Minimum image width in pixels (default %d): ", cfg.MinWidth),
			cfg.MinWidth,
		)
	}
	grabReport.MaxImages = cfg.MaxImages
	grabReport.MinWidth = cfg.MinWidth

	// Validate after prompts so interactive answers are covered too
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	return runGrab(ctx, cmd, cfg, grabReport, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildGrabConfig creates a Config from cobra command flags and the
// optional config file.
func buildGrabConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.TextFile, err = cmd.Flags().GetString("text-output")
	if err != nil {
		return nil, err
	}

	cfg.HTMLFile, err = cmd.Flags().GetString("html-output")
	if err != nil {
		return nil, err
	}

	cfg.ImageDir, err = cmd.Flags().GetString("image-dir")
	if err != nil {
		return nil, err
	}

	cfg.ManifestFile, err = cmd.Flags().GetString("manifest")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load the config file. A missing file is only an error when the user
	// named one explicitly.
	path, err := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		// Run with defaults
	case err != nil:
		return nil, err
	default:
		file, err := config.LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		file.ApplyTo(cfg)
	}

	return cfg, nil
}

// runGrab assembles the pipeline and executes the grab.
func runGrab(ctx context.Context, cmd *cobra.Command, cfg *config.Config, grabReport *model.GrabReport, logger *slog.Logger) error {
	logger.Info("starting grab",
		"url", grabReport.SourceURL,
		"downloadImages", grabReport.DownloadImages,
	)

	hc := &http.Client{Timeout: cfg.Timeout}

	clientOpts := []webclient.Option{webclient.WithHTTPClient(hc)}
	if cfg.File != nil {
		if len(cfg.File.UserAgents) > 0 {
			clientOpts = append(clientOpts, webclient.WithUserAgents(cfg.File.UserAgents))
		}
		if cfg.File.Referer != "" {
			clientOpts = append(clientOpts, webclient.WithReferer(cfg.File.Referer))
		}
	}
	client := webclient.New(clientOpts...)

	fetcher := wiki.NewFetcher(
		wiki.WithEndpoint(cfg.APIEndpoint),
		wiki.WithHTTPClient(hc),
		wiki.WithFetcherLogger(logger),
	)
	locator := commons.NewLocator(client,
		commons.WithOrigin(cfg.CommonsOrigin),
		commons.WithLocatorLogger(logger),
	)
	upgrader := commons.NewUpgrader(client, commons.WithUpgraderLogger(logger))
	downloader := download.NewDownloader(client, upgrader,
		download.WithDelayRange(cfg.MinDelay, cfg.MaxDelay),
		download.WithDownloaderLogger(logger),
	)

	p := pipeline.New(
		pipeline.WithLogger(logger),
		pipeline.WithContinueOnError(true),
	)
	p.AddSteps(
		pipeline.NewResolveTitleStep(),
		pipeline.NewFetchContentStep(fetcher, logger),
		pipeline.NewRenderContentStep(),
		pipeline.NewSaveContentStep(cfg.TextFile, cfg.HTMLFile, logger),
		pipeline.NewLocateImagesStep(locator, logger),
		pipeline.NewDownloadImagesStep(downloader, cfg.ImageDir, logger),
	)

	startTime := time.Now()
	if err := p.Execute(ctx, grabReport); err != nil {
		return fmt.Errorf("grab failed: %w", err)
	}
	elapsed := time.Since(startTime)

	out := cmd.OutOrStdout()
	if grabReport.ContentError != "" {
		fmt.Fprintf(out, "Could not retrieve article content: %s\n", grabReport.ContentError)
	}
	if grabReport.TextPath != "" {
		fmt.Fprintf(out, "Text content saved to %s\n", grabReport.TextPath)
	}
	if grabReport.DownloadImages {
		if len(grabReport.Saved) > 0 {
			fmt.Fprintf(out, "Downloaded %d images to the %s folder\n", len(grabReport.Saved), cfg.ImageDir)
		} else {
			fmt.Fprintln(out, "No images found for this Wikipedia page on Wikimedia Commons")
		}
	}
	fmt.Fprintf(out, "Done in %s\n", elapsed.Round(time.Millisecond))

	if cfg.ManifestFile != "" {
		if err := writeManifest(cfg.ManifestFile, grabReport); err != nil {
			logger.Error("manifest failed", "path", cfg.ManifestFile, "error", err)
		} else {
			fmt.Fprintf(out, "Run manifest saved to %s\n", cfg.ManifestFile)
		}
	}
	return nil
}

// writeManifest renders the markdown run manifest to the given path.
func writeManifest(path string, grabReport *model.GrabReport) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create manifest file: %w", err)
	}
	defer f.Close() //nolint:errcheck // write errors surface from Write below

	writer := report.NewManifestWriter(f)
	if _, err := writer.Write(grabReport); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
