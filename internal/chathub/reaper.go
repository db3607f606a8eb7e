package chathub

import (
	"log"
	"time"
)

// Reaper periodically evicts inactive users, unwinding their sessions the
// same way #bye does. It shares the hub's lock with ordinary requests, and a
// sweep only does in-memory map work, so it cannot starve them.
type Reaper struct {
	hub      *Hub
	interval time.Duration
	timeout  time.Duration
	stop     chan struct{}
}

// NewReaper creates a reaper sweeping every interval for users inactive
// longer than timeout.
func NewReaper(h *Hub, interval, timeout time.Duration) *Reaper {
	return &Reaper{
		hub:      h,
		interval: interval,
		timeout:  timeout,
		stop:     make(chan struct{}),
	}
}

// Run blocks until Stop is called. Start it in its own goroutine.
func (r *Reaper) Run() {
	log.Printf("INFO: reaper started (interval %s, timeout %s)", r.interval, r.timeout)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := r.hub.CleanupInactive(r.timeout); n > 0 {
				log.Printf("INFO: reaper removed %d inactive users", n)
			}
		case <-r.stop:
			log.Println("INFO: reaper stopped")
			return
		}
	}
}

// Stop terminates Run. Safe to call once.
func (r *Reaper) Stop() {
	close(r.stop)
}
