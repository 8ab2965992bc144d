package main

import (
	"net/http"

	"ping-relay/internal/types"

	"github.com/gin-gonic/gin"
)

// handleInfo godoc
// @Summary Service info
// @Description Returns a fixed payload identifying the receiver
// @Tags health
// @Produce json
// @Success 200 {object} types.InfoPayload
// @Router /info [get]
func (app *App) handleInfo(c *gin.Context) {
	writeJSON(c, http.StatusOK, types.NewInfoPayload())
}
