// Package chathub implements the matchmaking and relay engine: the waiting
// queue, the paired-session lifecycle, the per-user mailboxes and the command
// router that drives them. All state is in-memory and owned by a single Hub;
// nothing survives a restart.
package chathub

import (
	"log"
	"sync"
	"time"

	"randomconnect/backend/internal/config"
	"randomconnect/backend/internal/redact"
)

// Profile is the per-user state. Created lazily on first contact, touched on
// every inbound message, removed only by the reaper.
type Profile struct {
	// ID is the opaque caller-supplied user identifier. It is never a phone
	// number by contract, but may resemble one, so logs only ever see a short
	// prefix of it.
	ID string
	// Nickname is the display name shown to the partner via #who.
	Nickname string
	// MaskingEnabled controls phone redaction of this user's outgoing
	// messages. On by default, toggled with #hide.
	MaskingEnabled bool
	// PartnerID and SessionEpoch are set while paired and empty otherwise.
	// The epoch is regenerated on every pairing; both sides of a pair carry
	// the same value.
	PartnerID    string
	SessionEpoch string
	// LastActivity drives the inactivity reaper.
	LastActivity time.Time
}

// Hub owns all mutable state of the engine. Cross-structure invariants (pair
// symmetry, epoch consistency, queue exclusivity) span several maps, so every
// mutation happens under the one mutex; the *Locked helpers assume it is held.
// The critical section only ever touches in-memory structures, never I/O.
type Hub struct {
	mu  sync.Mutex
	cfg *config.Config

	users         map[string]*Profile
	pairs         map[string]string // both directions of every active pair
	notifications map[string][]string
	messages      map[string][]string
	queue         *WaitQueue
}

// NewHub creates an empty Hub.
func NewHub(cfg *config.Config) *Hub {
	return &Hub{
		cfg:           cfg,
		users:         make(map[string]*Profile),
		pairs:         make(map[string]string),
		notifications: make(map[string][]string),
		messages:      make(map[string][]string),
		queue:         NewWaitQueue(),
	}
}

// getOrCreateLocked returns the profile for userID, creating it on first
// contact, and touches its activity timestamp.
func (h *Hub) getOrCreateLocked(userID, nickname string) *Profile {
	p, ok := h.users[userID]
	if !ok {
		if nickname == "" {
			nickname = "User_" + shortID(userID)
		}
		p = &Profile{ID: userID, Nickname: nickname, MaskingEnabled: true}
		h.users[userID] = p
		log.Printf("INFO: created user state for %s", redact.ForLog(nickname))
	}
	p.LastActivity = time.Now()
	return p
}

// shortID truncates a user identifier for logging. Identifiers may resemble
// phone numbers and must never be logged whole.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
