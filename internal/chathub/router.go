package chathub

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"randomconnect/backend/internal/config"
	"randomconnect/backend/internal/redact"
)

const (
	replyWaiting       = "🔍 Looking for someone to chat with... Please wait while we find you a partner!"
	replyAlreadyPaired = "You're already in a chat! Use #bye to end it first, or #again to find a new partner."
	replyChatEnded     = "👋 Chat ended. Use #meet to connect with someone new!"
	replyNotInChat     = "You're not currently in a chat."
	replyAgainWaiting  = "🔍 Looking for a new chat partner... Please wait!"
	replyWhoIdle       = "You're not currently in a chat. Use #meet to connect!"
	replyInboxEmpty    = "📭 Inbox empty."
	replyNoPartner     = "No partner found. Use #meet to connect."
	replyRelayUsage    = "Usage: #R your message here"
	replyStrictTip     = "Use #R to send a message to your partner, and #M to check messages."
	replyInternalError = "Something went wrong processing your message. Please try again."
)

// Process handles one inbound message and returns the reply synchronously.
// Text starting with one of the fixed commands is dispatched by prefix,
// case-insensitively; anything else is either relayed (permissive mode) or
// answered with a usage tip (strict mode, the default).
//
// The caller does not need to serialize calls; the hub locks internally. A
// panic in a handler is contained to this one request.
func (h *Hub) Process(userID, text, nickname string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: panic processing message from %s: %v", shortID(userID), r)
			reply = replyInternalError
		}
	}()

	h.mu.Lock()
	defer h.mu.Unlock()

	p := h.getOrCreateLocked(userID, nickname)
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	switch {
	// #meet must be checked before the #m prefix.
	case strings.HasPrefix(lower, "#meet"):
		return h.handleMeetLocked(p)
	case strings.HasPrefix(lower, "#bye"):
		return h.handleByeLocked(p)
	case strings.HasPrefix(lower, "#again"):
		return h.handleAgainLocked(p)
	case strings.HasPrefix(lower, "#hide"):
		return h.handleHideLocked(p)
	case strings.HasPrefix(lower, "#who"):
		return h.handleWhoLocked(p)
	case strings.HasPrefix(lower, "#m"):
		return h.handleInboxLocked(p)
	case strings.HasPrefix(lower, "#r"):
		payload := strings.TrimSpace(trimmed[2:])
		if payload == "" {
			return replyRelayUsage
		}
		return h.handleRelayLocked(p, payload)
	}

	if h.cfg.DeliveryMode == config.ModePermissive {
		out := h.handleRelayLocked(p, trimmed)
		if queued := h.popQueuedLocked(p.ID, h.cfg.PiggybackLimit); len(queued) > 0 {
			lines := make([]string, 0, len(queued))
			for _, m := range queued {
				lines = append(lines, "💬 Partner: "+m)
			}
			return out + "\n\n" + strings.Join(lines, "\n")
		}
		return out
	}
	return replyStrictTip
}

func (h *Hub) handleMeetLocked(p *Profile) string {
	if h.partnerLocked(p) != nil {
		return replyAlreadyPaired
	}
	partner, ok := h.matchLocked(p)
	if !ok {
		return replyWaiting
	}
	return fmt.Sprintf("🎉 Connected! You're now chatting with %s. Say hello!", partner.Nickname)
}

func (h *Hub) handleByeLocked(p *Profile) string {
	if h.endChatLocked(p) == nil {
		return replyNotInChat
	}
	return replyChatEnded
}

// handleAgainLocked is the atomic end-then-rematch: the old partner is
// notified exactly once (by endChatLocked), and both steps happen inside the
// same critical section.
func (h *Hub) handleAgainLocked(p *Profile) string {
	h.endChatLocked(p)
	partner, ok := h.matchLocked(p)
	if !ok {
		return replyAgainWaiting
	}
	return fmt.Sprintf("🔄 New connection! You're now chatting with %s. Say hello!", partner.Nickname)
}

func (h *Hub) handleHideLocked(p *Profile) string {
	p.MaskingEnabled = !p.MaskingEnabled
	status := "OFF"
	if p.MaskingEnabled {
		status = "ON"
	}
	log.Printf("INFO: phone masking for %s: %s", shortID(p.ID), status)
	return fmt.Sprintf("🔒 Phone number masking is now %s.", status)
}

func (h *Hub) handleWhoLocked(p *Profile) string {
	partner := h.partnerLocked(p)
	if partner == nil {
		return replyWhoIdle
	}
	return fmt.Sprintf("👤 You're chatting with: %s", partner.Nickname)
}

func (h *Hub) handleInboxLocked(p *Profile) string {
	notifications, messages := h.drainLocked(p.ID)
	if len(notifications) == 0 && len(messages) == 0 {
		return replyInboxEmpty
	}
	parts := make([]string, 0, len(notifications)+len(messages))
	for _, n := range notifications {
		parts = append(parts, "ℹ️ "+n)
	}
	for _, m := range messages {
		parts = append(parts, "💬 Partner: "+m)
	}
	combined := strings.Join(parts, "\n")
	log.Printf("INFO: delivered inbox to %s: %s", shortID(p.ID), redact.ForLog(combined))
	return combined
}

func (h *Hub) handleRelayLocked(p *Profile, text string) string {
	reply, err := h.relayLocked(p, text)
	if err != nil {
		// Both failures read the same to the user; the distinction only
		// matters for the logs relayLocked already wrote.
		if errors.Is(err, ErrNotPaired) || errors.Is(err, ErrSessionMismatch) {
			return replyNoPartner
		}
		return replyInternalError
	}
	return reply
}
