package chathub

import (
	"log"
	"time"
)

// Stats is a point-in-time snapshot of the engine.
type Stats struct {
	ActiveUsers  int `json:"active_users"`
	WaitingUsers int `json:"waiting_users"`
	ActivePairs  int `json:"active_pairs"`
}

// Stats returns the current counts. Pairs are stored in both directions, so
// the map length is halved to count each pair once.
func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{
		ActiveUsers:  len(h.users),
		WaitingUsers: h.queue.Len(),
		ActivePairs:  len(h.pairs) / 2,
	}
}

// CleanupInactive removes every user whose last activity is older than
// window. A paired user's session is ended through the same transition as
// #bye, so the partner is notified; the user's profile and mailboxes are then
// deleted outright. Returns the number of users removed.
func (h *Hub) CleanupInactive(window time.Duration) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	cutoff := time.Now().Add(-window)
	var stale []*Profile
	for _, p := range h.users {
		if p.LastActivity.Before(cutoff) {
			stale = append(stale, p)
		}
	}

	for _, p := range stale {
		// Ending the session also covers the waiting case: queue membership
		// is dropped as part of the end transition.
		h.endChatLocked(p)
		delete(h.users, p.ID)
		delete(h.notifications, p.ID)
		delete(h.messages, p.ID)
		log.Printf("INFO: removed inactive user %s", shortID(p.ID))
	}
	return len(stale)
}
