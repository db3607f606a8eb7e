package chathub

import (
	"errors"
	"fmt"
	"log"

	"randomconnect/backend/internal/redact"
)

// Relay failures. All of them are ordinary misuse handled inside the hub and
// rendered as reply strings by the router; none crosses the engine boundary.
var (
	// ErrNotPaired means the sender has no active partner.
	ErrNotPaired = errors.New("not paired")
	// ErrSessionMismatch means the sender's and partner's session epochs
	// disagree: the session was torn down and replaced between the sender's
	// last check and this send. Shown to the user exactly like ErrNotPaired,
	// logged distinctly.
	ErrSessionMismatch = errors.New("session epoch mismatch")
)

// relayLocked queues text for p's partner and returns the sender-facing
// confirmation. The stored copy is redacted per p's masking preference; the
// confirmation echoes the original text back to the sender unchanged.
//
// A pending notification takes priority over the send: if p's partner left
// and p has not seen the notice yet, the notice is returned instead and the
// relay attempt is dropped.
func (h *Hub) relayLocked(p *Profile, text string) (string, error) {
	if notes := h.notifications[p.ID]; len(notes) > 0 {
		note := notes[len(notes)-1]
		delete(h.notifications, p.ID)
		log.Printf("INFO: delivered pending notification to %s: %s", shortID(p.ID), redact.ForLog(note))
		return note, nil
	}

	partner := h.partnerLocked(p)
	if partner == nil {
		return "", ErrNotPaired
	}
	if p.SessionEpoch == "" || p.SessionEpoch != partner.SessionEpoch {
		log.Printf("WARN: session mismatch between %s and %s; dropping message",
			shortID(p.ID), shortID(partner.ID))
		return "", ErrSessionMismatch
	}

	stored := text
	if p.MaskingEnabled {
		stored = redact.Phone(stored)
	}
	h.pushMessageLocked(partner.ID, stored)

	log.Printf("INFO: message queued from %s to %s: %s",
		shortID(p.ID), shortID(partner.ID), redact.ForLog(stored))
	return fmt.Sprintf("📤 Message sent to your partner from %s: %s", p.Nickname, text), nil
}
