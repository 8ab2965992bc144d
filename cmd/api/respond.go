package main

import (
	"net/http"

	"ping-relay/internal/relay"

	"github.com/gin-gonic/gin"
)

const jsonContentType = "application/json"

// writeJSON renders obj with a bare application/json content type; gin would
// otherwise append a charset.
func writeJSON(c *gin.Context, status int, obj any) {
	c.Header("Content-Type", jsonContentType)
	c.JSON(status, obj)
}

// writeRelayed copies an upstream payload to the caller. An upstream without
// a Content-Type is answered without one rather than a sniffed guess.
func writeRelayed(c *gin.Context, resp *relay.Response) {
	if resp.ContentType != "" {
		c.Data(http.StatusOK, resp.ContentType, resp.Body)
		return
	}

	c.Writer.Header()["Content-Type"] = nil
	c.Status(http.StatusOK)
	_, _ = c.Writer.Write(resp.Body)
}
