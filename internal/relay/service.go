package relay

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"

	"ping-relay/internal/providers/upstream"
	"ping-relay/internal/requestlog"
)

// Response is a successful relay: the upstream body and its declared type.
type Response struct {
	ContentType string
	Body        []byte
}

// Service relays a GET to a caller supplied URL.
type Service interface {
	// Ping fetches url and returns its body when the upstream answers 200.
	// Any other outcome is returned as an HTTPError.
	Ping(ctx context.Context, url string) (*Response, error)
}

// Fetcher performs the outbound request
type Fetcher interface {
	Get(ctx context.Context, url string) (*upstream.Response, error)
}

type relayService struct {
	fetcher Fetcher
	logger  *slog.Logger
}

// NewRelayService creates a relay service backed by a real upstream client.
func NewRelayService(opts upstream.Options, logger *slog.Logger) Service {
	return NewRelayServiceWithFetcher(logger, upstream.NewClient(opts, logger))
}

// NewRelayServiceWithFetcher creates a relay service with a custom fetcher.
// This is useful for testing with mock upstreams.
func NewRelayServiceWithFetcher(logger *slog.Logger, fetcher Fetcher) Service {
	return &relayService{
		fetcher: fetcher,
		logger:  logger.With("component", "relay-service"),
	}
}

func (s *relayService) Ping(ctx context.Context, url string) (*Response, error) {
	logger := requestlog.FromContext(ctx, s.logger)

	resp, err := s.fetcher.Get(ctx, url)
	if err != nil {
		if isTimeout(err) {
			logger.Info("upstream timed out", "url", url)
			return nil, &TimeoutError{Err: err}
		}
		logger.Info("upstream unreachable", "url", url, "error", err)
		return nil, &ConnectError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		statusErr := &StatusError{
			StatusCode: resp.StatusCode,
			Reason:     reasonPhrase(resp.StatusCode, resp.Status),
		}
		logger.Info("upstream returned non-200 status",
			"url", url,
			"status_code", resp.StatusCode,
			"relay_status", statusErr.HTTPStatus(),
		)
		return nil, statusErr
	}

	return &Response{
		ContentType: resp.Header.Get("Content-Type"),
		Body:        resp.Body,
	}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// reasonPhrase extracts the reason from a status line such as "404 Not Found".
// Upstreams that send a bare code fall back to the standard text.
func reasonPhrase(code int, status string) string {
	reason := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if reason == "" {
		return http.StatusText(code)
	}
	return reason
}
