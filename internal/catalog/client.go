package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/lehigh-university-libraries/glycemic/internal/models"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5
)

// Client fetches catalog and recipe documents served over HTTP
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRateLimit sets the number of requests allowed per second
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewClient creates a new catalog client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// IsRemote reports whether path names an http(s) URL rather than a file
func IsRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// FetchFoods downloads and validates a food catalog
func (c *Client) FetchFoods(ctx context.Context, rawURL string) ([]models.Food, error) {
	format, err := remoteFormat(rawURL)
	if err != nil {
		return nil, loadErr(rawURL, 0, "", err)
	}
	if format == FormatParquet {
		return nil, loadErr(rawURL, 0, "", fmt.Errorf("%w: parquet catalogs must be local files", ErrUnsupportedFormat))
	}

	body, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, loadErr(rawURL, 0, "", err)
	}
	defer body.Close()

	return Decode(body, format, rawURL)
}

// FetchRecipes downloads and validates a recipe document
func (c *Client) FetchRecipes(ctx context.Context, rawURL string) ([]models.Recipe, error) {
	format, err := remoteFormat(rawURL)
	if err != nil {
		return nil, loadErr(rawURL, 0, "", err)
	}

	body, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, loadErr(rawURL, 0, "", err)
	}
	defer body.Close()

	return DecodeRecipes(body, format, rawURL)
}

func (c *Client) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	slog.Debug("Fetching remote catalog", "url", rawURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("catalog server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return resp.Body, nil
}

// remoteFormat picks the format from the URL path so query strings don't
// hide the extension.
func remoteFormat(rawURL string) (Format, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: invalid URL: %v", ErrUnsupportedFormat, err)
	}
	return FormatFromPath(u.Path)
}

// LoadFrom loads a food catalog from a URL, a local file, or the bundled
// data when path is empty.
func LoadFrom(ctx context.Context, path string) ([]models.Food, error) {
	switch {
	case path == "":
		return LoadDefault()
	case IsRemote(path):
		return NewClient().FetchFoods(ctx, path)
	default:
		return NewLoader(path).Load()
	}
}

// LoadRecipesFrom is LoadFrom for recipe documents
func LoadRecipesFrom(ctx context.Context, path string) ([]models.Recipe, error) {
	switch {
	case path == "":
		return LoadDefaultRecipes()
	case IsRemote(path):
		return NewClient().FetchRecipes(ctx, path)
	default:
		return LoadRecipes(path)
	}
}
