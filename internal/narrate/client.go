package narrate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/nao1215/wikigrab/internal/config"
)

// ErrMissingAPIKey is returned when no API key is available from the
// environment or the config file.
var ErrMissingAPIKey = errors.New("missing API key: set " + config.APIKeyEnv + " or add it to the config file")

// StatusError represents a non-200 response from the speech API.
type StatusError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Body is the response body, which usually carries a JSON error.
	Body string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("speech API request failed with status code %d: %s", e.StatusCode, e.Body)
}

// VoiceSettings tunes the synthesized voice.
type VoiceSettings struct {
	// Stability controls consistency between generations.
	Stability float64 `json:"stability"`

	// SimilarityBoost controls adherence to the original voice.
	SimilarityBoost float64 `json:"similarity_boost"`

	// Style controls expressiveness.
	Style float64 `json:"style"`

	// Speed scales speaking rate, 1.0 is normal.
	Speed float64 `json:"speed"`
}

// DefaultVoiceSettings returns a balanced voice tuned for narration.
func DefaultVoiceSettings() VoiceSettings {
	return VoiceSettings{
		Stability:       0.5,
		SimilarityBoost: 0.75,
		Style:           0.1,
		Speed:           1.0,
	}
}

// Client calls the text-to-speech API.
type Client struct {
	// endpoint is the API base URL; the voice ID is appended to it.
	endpoint string

	// apiKey authenticates requests via the xi-api-key header.
	apiKey string

	// voiceID selects the narration voice.
	voiceID string

	// modelID selects the synthesis model.
	modelID string

	// hc performs the HTTP requests.
	hc *http.Client

	// logger is used for structured logging.
	logger *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithNarrateEndpoint overrides the API base URL.
func WithNarrateEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithVoiceID overrides the narration voice.
func WithVoiceID(voiceID string) ClientOption {
	return func(c *Client) {
		c.voiceID = voiceID
	}
}

// WithModelID overrides the synthesis model.
func WithModelID(modelID string) ClientOption {
	return func(c *Client) {
		c.modelID = modelID
	}
}

// WithNarrateHTTPClient overrides the HTTP client, mainly for tests.
func WithNarrateHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.hc = hc
	}
}

// WithNarrateLogger sets a custom logger.
func WithNarrateLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a speech client. apiKey must be non-empty; callers
// check ErrMissingAPIKey before constructing so a missing key fails
// before any file is read.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: config.DefaultNarrateEndpoint,
		apiKey:   apiKey,
		voiceID:  config.DefaultVoiceID,
		modelID:  config.DefaultNarrateModel,
		hc:       &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// request is the JSON payload sent to the speech endpoint.
type request struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings VoiceSettings `json:"voice_settings"`
}

// Synthesize converts text into MP3 audio bytes.
func (c *Client) Synthesize(ctx context.Context, text string, settings VoiceSettings) ([]byte, error) {
	payload, err := json.Marshal(request{
		Text:          text,
		ModelID:       c.modelID,
		VoiceSettings: settings,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode speech request: %w", err)
	}

	url := c.endpoint + "/" + c.voiceID
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create speech request: %w", err)
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	c.logger.Debug("sending speech request",
		"voice_id", c.voiceID,
		"model_id", c.modelID,
		"text_length", len(text),
	)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close on read path

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read speech response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
