package main

import (
	"errors"
	"net/http"

	"ping-relay/internal/relay"
	"ping-relay/internal/requestlog"
	"ping-relay/internal/types"

	"github.com/gin-gonic/gin"
)

// handlePing godoc
// @Summary Relay a GET request
// @Description Fetches the given URL and returns the upstream body and content type when it answers 200
// @Tags relay
// @Accept json
// @Produce json
// @Param request body types.PingRequest true "Upstream to fetch"
// @Success 200 {string} string "Upstream body, verbatim"
// @Failure 400 {object} types.ErrorPayload "Upstream answered 4xx"
// @Failure 422 {object} map[string]string "Malformed request body"
// @Failure 500 {object} types.ErrorPayload "Upstream answered another non-200 status"
// @Failure 502 {object} types.ErrorPayload "Upstream unreachable"
// @Failure 504 {object} types.ErrorPayload "Upstream timed out"
// @Router /ping [post]
func (app *App) handlePing(c *gin.Context) {
	var input types.PingRequest

	// Bind and validate the JSON body
	if err := c.ShouldBindJSON(&input); err != nil {
		writeJSON(c, http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	// Delegate to business layer
	resp, err := app.relayService.Ping(c.Request.Context(), *input.URL)
	if err != nil {
		var httpErr relay.HTTPError
		if errors.As(err, &httpErr) {
			writeJSON(c, httpErr.HTTPStatus(), httpErr.Payload())
			return
		}

		requestlog.FromContext(c.Request.Context(), app.logger).Error("failed to relay request",
			"url", *input.URL,
			"error", err,
		)
		writeJSON(c, http.StatusInternalServerError,
			types.NewErrorPayload(http.StatusInternalServerError, "failed to relay request"))
		return
	}

	writeRelayed(c, resp)
}
