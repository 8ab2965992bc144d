package upstream

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"ping-relay/internal/requestlog"

	"github.com/hashicorp/go-cleanhttp"
)

const (
	DefaultTimeout      = 10 * time.Second
	DefaultMaxBodyBytes = 10 << 20
)

// ErrBodyTooLarge is returned when the upstream body exceeds Options.MaxBodyBytes.
var ErrBodyTooLarge = errors.New("upstream response body too large")

// Options controls how each outbound GET is made
type Options struct {
	Timeout            time.Duration
	InsecureSkipVerify bool
	FollowRedirects    bool
	MaxBodyBytes       int64
}

// DefaultOptions matches the relay's documented behaviour: no certificate
// checks, redirects followed, 10 second deadline.
func DefaultOptions() Options {
	return Options{
		Timeout:            DefaultTimeout,
		InsecureSkipVerify: true,
		FollowRedirects:    true,
		MaxBodyBytes:       DefaultMaxBodyBytes,
	}
}

// Response is a fully read upstream response
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

type Client struct {
	opts   Options
	logger *slog.Logger
}

func NewClient(opts Options, logger *slog.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Client{
		opts:   opts,
		logger: logger.With("component", "upstream-client"),
	}
}

// Get issues a single GET to rawURL. Every call gets its own transport, which
// is torn down before Get returns.
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	logger := requestlog.FromContext(ctx, c.logger)

	transport := cleanhttp.DefaultTransport()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: c.opts.InsecureSkipVerify,
	}
	defer transport.CloseIdleConnections()

	httpClient := &http.Client{
		Transport: transport,
		Timeout:   c.opts.Timeout,
	}
	if !c.opts.FollowRedirects {
		httpClient.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	logger.Debug("fetching upstream", "url", rawURL, "timeout", c.opts.Timeout)

	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		logger.Warn("upstream request failed",
			"url", rawURL,
			"duration", time.Since(start),
			"error", err,
		)
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.opts.MaxBodyBytes+1))
	if err == nil && int64(len(body)) > c.opts.MaxBodyBytes {
		err = fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, c.opts.MaxBodyBytes)
	}
	if err != nil {
		logger.Warn("failed to read upstream body",
			"url", rawURL,
			"status_code", resp.StatusCode,
			"error", err,
		)
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	logger.Debug("upstream responded",
		"url", rawURL,
		"status_code", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start),
	)

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
