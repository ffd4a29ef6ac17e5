package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"auction-draft-service/internal/config"
	"auction-draft-service/internal/domain/catalog"
	"auction-draft-service/internal/domain/draft"
	"auction-draft-service/internal/logging"
	"auction-draft-service/internal/metrics"
)

const defaultAdviceTimeout = 30 * time.Second

// ErrNotConfigured indicates advice was requested without a service URL.
var ErrNotConfigured = errors.New("advice service not configured")

// serviceRequest is the payload sent to the advice service.
type serviceRequest struct {
	Model  string `json:"model,omitempty"`
	Prompt string `json:"prompt"`
}

// serviceResponse is the advice service's reply; Content carries free text
// that should contain the recommendations JSON.
type serviceResponse struct {
	Content string `json:"content"`
}

// Client calls the external advice service. Advice is advisory: failures are
// reported to the caller but never affect draft state.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
	recorder   *metrics.Recorder
}

// NewClient constructs an advice client from configuration.
func NewClient(cfg config.AdviceConfig, logger *slog.Logger, recorder *metrics.Recorder) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultAdviceTimeout
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		recorder:   recorder,
	}
}

// Configured reports whether a service URL is set.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// Recommend builds the prompt for the current draft context, calls the advice
// service and parses its recommendations.
func (c *Client) Recommend(ctx context.Context, all, available []catalog.CanonicalPlayer, session draft.Session, league config.LeagueConfig) ([]Recommendation, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	prompt := BuildPrompt(all, available, session, league)

	start := time.Now()
	text, err := c.call(ctx, prompt)
	c.recorder.RecordAdviceRequest(time.Since(start), err)
	if err != nil {
		logging.Error(logging.FromContext(ctx, c.logger), "advice request failed", err)
		return nil, err
	}

	recs, err := ExtractRecommendations(text)
	if err != nil {
		logging.Error(logging.FromContext(ctx, c.logger), "advice response unusable", err)
		return nil, err
	}

	logging.Info(logging.FromContext(ctx, c.logger), "advice received",
		slog.Int(logging.FieldCount, len(recs)),
	)
	return recs, nil
}

func (c *Client) call(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(serviceRequest{Model: c.model, Prompt: prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("advice service status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded serviceResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &ParseError{Message: "malformed service envelope", Err: err}
	}
	if decoded.Content == "" {
		return "", &ParseError{Message: "empty service response"}
	}
	return decoded.Content, nil
}
