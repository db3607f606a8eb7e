package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// MessageRequest is one inbound chat message or command.
type MessageRequest struct {
	Text     string `json:"text" binding:"required"`
	Nickname string `json:"nickname"`
}

// CleanupRequest is the operator maintenance trigger.
type CleanupRequest struct {
	TimeoutMinutes int `json:"timeout_minutes"`
}

// Healthz is a plain liveness probe.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// PostMessage routes one message through the hub and returns the reply.
func (h *Handler) PostMessage(c *gin.Context) {
	anonID, ok := h.bearerAnonID(c)
	if !ok {
		return
	}
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	reply := h.Hub.Process(anonID, req.Text, req.Nickname)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// GetStats reports active users, waiting users and active pairs. Pairs are
// counted once, not per participant.
func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Hub.Stats())
}

// PostCleanup removes users inactive beyond the requested window and returns
// the counts before and after. Zero or negative timeout falls back to the
// configured inactivity window.
func (h *Handler) PostCleanup(c *gin.Context) {
	if _, ok := h.bearerAnonID(c); !ok {
		return
	}
	// An empty body is fine: it means "use the configured window".
	var req CleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}
	window := h.Cfg.InactivityTimeout
	if req.TimeoutMinutes > 0 {
		window = time.Duration(req.TimeoutMinutes) * time.Minute
	}

	before := h.Hub.Stats()
	removed := h.Hub.CleanupInactive(window)
	after := h.Hub.Stats()

	c.JSON(http.StatusOK, gin.H{
		"removed": removed,
		"before":  before,
		"after":   after,
	})
}
