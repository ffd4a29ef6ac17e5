package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"auction-draft-service/internal/domain/catalog"
	"auction-draft-service/internal/providers"
)

// Config controls how the feed client reaches one scraper collaborator.
// URL wins when both URL and Path are set; Path reads a JSON dump the scraper
// deposited on disk.
type Config struct {
	Source     catalog.Source
	URL        string
	Path       string
	HTTPClient *http.Client
}

// Client fetches one source's valuation feed and maps it to source valuations.
type Client struct {
	source     catalog.Source
	url        string
	path       string
	httpClient httpDoer
	readFile   func(string) ([]byte, error)
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewClient constructs a feed client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		source:     cfg.Source,
		url:        strings.TrimSuffix(cfg.URL, "/"),
		path:       cfg.Path,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		readFile:   os.ReadFile,
	}
}

func (c *Client) Source() catalog.Source {
	return c.source
}

// FetchValuations retrieves the raw dump from the configured URL or path and
// normalizes it.
func (c *Client) FetchValuations(ctx context.Context) ([]catalog.SourceValuation, error) {
	raw, err := c.fetchRaw(ctx)
	if err != nil {
		return nil, err
	}
	return c.decode(raw)
}

func (c *Client) fetchRaw(ctx context.Context) ([]byte, error) {
	if c.url != "" {
		return c.fetchHTTP(ctx)
	}
	if c.path != "" {
		raw, err := c.readFile(c.path)
		if err != nil {
			return nil, &providers.UpstreamError{
				Source:  string(c.source),
				Message: fmt.Sprintf("read dump %s", c.path),
				Err:     err,
			}
		}
		return raw, nil
	}
	return nil, &providers.UpstreamError{
		Source:  string(c.source),
		Message: "no feed URL or path configured",
	}
}

func (c *Client) fetchHTTP(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &providers.UpstreamError{
			Source:  string(c.source),
			Message: "request failed",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &providers.UpstreamError{
			Source:     string(c.source),
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) decode(raw []byte) ([]catalog.SourceValuation, error) {
	switch c.source {
	case catalog.SourceYahoo:
		var entries []yahooEntry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, &providers.UpstreamError{
				Source:  string(c.source),
				Message: "malformed feed payload",
				Err:     err,
			}
		}
		return mapYahoo(entries), nil
	default:
		var entries []espnEntry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, &providers.UpstreamError{
				Source:  string(c.source),
				Message: "malformed feed payload",
				Err:     err,
			}
		}
		return mapESPN(entries), nil
	}
}

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}
