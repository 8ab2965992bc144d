package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"testing"

	"ping-relay/internal/providers/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFetcher struct {
	response *upstream.Response
	err      error
	gotURL   string
}

func (m *mockFetcher) Get(ctx context.Context, url string) (*upstream.Response, error) {
	m.gotURL = url
	return m.response, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func upstreamResponse(code int, status string, contentType string, body string) *upstream.Response {
	header := http.Header{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &upstream.Response{
		StatusCode: code,
		Status:     status,
		Header:     header,
		Body:       []byte(body),
	}
}

func TestRelayService_Ping(t *testing.T) {
	tests := []struct {
		name        string
		response    *upstream.Response
		err         error
		wantBody    string
		wantType    string
		wantStatus  int
		wantMessage string
	}{
		{
			name:     "upstream 200 relayed verbatim",
			response: upstreamResponse(200, "200 OK", "text/html; charset=utf-8", "<html><body/></html>"),
			wantBody: "<html><body/></html>",
			wantType: "text/html; charset=utf-8",
		},
		{
			name:     "upstream 200 without content type",
			response: upstreamResponse(200, "200 OK", "", "raw"),
			wantBody: "raw",
			wantType: "",
		},
		{
			name:        "upstream 404 maps to 400",
			response:    upstreamResponse(404, "404 Not Found", "text/plain", "nope"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Not Found",
		},
		{
			name:        "custom reason phrase preserved",
			response:    upstreamResponse(418, "418 Short And Stout", "", ""),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Short And Stout",
		},
		{
			name:        "upstream 503 maps to 500",
			response:    upstreamResponse(503, "503 Service Unavailable", "", ""),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Service Unavailable",
		},
		{
			name:        "upstream 204 maps to 500",
			response:    upstreamResponse(204, "204 No Content", "", ""),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "No Content",
		},
		{
			name:        "unresolved redirect maps to 500",
			response:    upstreamResponse(302, "302 Found", "", ""),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Found",
		},
		{
			name:        "bare status code falls back to standard text",
			response:    upstreamResponse(500, "500", "", ""),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal Server Error",
		},
		{
			name: "connection refused maps to 502",
			err: fmt.Errorf("failed to fetch: %w", &url.Error{
				Op:  "Get",
				URL: "http://127.0.0.1:1",
				Err: errors.New("dial tcp 127.0.0.1:1: connect: connection refused"),
			}),
			wantStatus:  http.StatusBadGateway,
			wantMessage: "dial tcp 127.0.0.1:1: connect: connection refused",
		},
		{
			name:        "oversized body maps to 502",
			err:         fmt.Errorf("failed to read response body: %w", upstream.ErrBodyTooLarge),
			wantStatus:  http.StatusBadGateway,
			wantMessage: "failed to read response body: upstream response body too large",
		},
		{
			name: "deadline maps to 504",
			err: fmt.Errorf("failed to fetch: %w", &url.Error{
				Op:  "Get",
				URL: "http://slow",
				Err: context.DeadlineExceeded,
			}),
			wantStatus:  http.StatusGatewayTimeout,
			wantMessage: "Timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &mockFetcher{response: tt.response, err: tt.err}
			service := NewRelayServiceWithFetcher(discardLogger(), fetcher)

			got, err := service.Ping(context.Background(), "http://upstream.test/path")
			assert.Equal(t, "http://upstream.test/path", fetcher.gotURL)

			if tt.wantStatus != 0 {
				require.Error(t, err)
				assert.Nil(t, got)

				var httpErr HTTPError
				require.True(t, errors.As(err, &httpErr), "error %v is not an HTTPError", err)
				assert.Equal(t, tt.wantStatus, httpErr.HTTPStatus())
				assert.Equal(t, tt.wantStatus, httpErr.Payload().Status)
				assert.Equal(t, tt.wantMessage, httpErr.Payload().Error)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, string(got.Body))
			assert.Equal(t, tt.wantType, got.ContentType)
		})
	}
}

func TestRelayService_ErrorTypes(t *testing.T) {
	cause := &url.Error{Op: "Get", URL: "http://x", Err: context.DeadlineExceeded}
	service := NewRelayServiceWithFetcher(discardLogger(), &mockFetcher{err: cause})

	_, err := service.Ping(context.Background(), "http://x")

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestReasonPhrase(t *testing.T) {
	tests := []struct {
		code   int
		status string
		want   string
	}{
		{404, "404 Not Found", "Not Found"},
		{500, "500 Internal Server Error", "Internal Server Error"},
		{599, "599 Weird", "Weird"},
		{404, "404", "Not Found"},
		{404, "", "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, reasonPhrase(tt.code, tt.status))
		})
	}
}
