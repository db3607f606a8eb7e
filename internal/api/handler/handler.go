// Package handler wires the HTTP surface to the chat hub: token issuing,
// the message endpoint, stats, operator cleanup and the WebSocket upgrade.
package handler

import (
	"github.com/gin-gonic/gin"

	"randomconnect/backend/internal/chathub"
	"randomconnect/backend/internal/config"
)

// Handler holds the hub and configuration shared by all routes.
type Handler struct {
	Hub *chathub.Hub
	Cfg *config.Config
}

func NewHandler(hub *chathub.Hub, cfg *config.Config) *Handler {
	return &Handler{Hub: hub, Cfg: cfg}
}

// Router builds the gin engine with all routes registered.
func (h *Handler) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", h.Healthz)
	r.GET("/token", h.GetToken)
	r.GET("/stats", h.GetStats)
	r.POST("/message", h.PostMessage)
	r.POST("/cleanup", h.PostCleanup)
	r.GET("/ws", h.ServeWebSocket)

	return r
}
