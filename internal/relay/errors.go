package relay

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"ping-relay/internal/types"
)

const timeoutMessage = "Timeout"

// HTTPError is implemented by every failure Ping can return. It carries the
// status and body the caller should be answered with.
type HTTPError interface {
	error
	HTTPStatus() int
	Payload() types.ErrorPayload
}

// ConnectError means no usable response was obtained from the upstream:
// DNS failure, refused connection, TLS handshake failure and the like.
type ConnectError struct {
	Err error
}

func (e *ConnectError) Error() string {
	return "upstream connect failed: " + e.Err.Error()
}

func (e *ConnectError) Unwrap() error { return e.Err }

func (e *ConnectError) HTTPStatus() int { return http.StatusBadGateway }

func (e *ConnectError) Payload() types.ErrorPayload {
	return types.NewErrorPayload(http.StatusBadGateway, describe(e.Err))
}

// TimeoutError means the upstream did not answer within the deadline.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string {
	return "upstream timed out: " + e.Err.Error()
}

func (e *TimeoutError) Unwrap() error { return e.Err }

func (e *TimeoutError) HTTPStatus() int { return http.StatusGatewayTimeout }

func (e *TimeoutError) Payload() types.ErrorPayload {
	return types.NewErrorPayload(http.StatusGatewayTimeout, timeoutMessage)
}

// StatusError is an upstream response other than 200.
type StatusError struct {
	StatusCode int
	Reason     string
}

func (e *StatusError) Error() string {
	return "upstream returned status " + strconv.Itoa(e.StatusCode) + ": " + e.Reason
}

// HTTPStatus collapses 4xx to 400 and everything else to 500.
func (e *StatusError) HTTPStatus() int {
	if e.StatusCode >= 400 && e.StatusCode < 500 {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (e *StatusError) Payload() types.ErrorPayload {
	return types.NewErrorPayload(e.HTTPStatus(), e.Reason)
}

// describe strips our own wrapping and the url.Error prefix, leaving the
// transport's description of what went wrong.
func describe(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}
