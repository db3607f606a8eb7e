package chathub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReaper_SweepsOnIntervalAndStops(t *testing.T) {
	h := newTestHub()
	h.Process("user_A", "#meet", "")
	h.Process("user_B", "#meet", "")
	h.users["user_A"].LastActivity = time.Now().Add(-time.Hour)

	r := NewReaper(h, 10*time.Millisecond, 30*time.Minute)
	go r.Run()
	time.Sleep(100 * time.Millisecond)
	r.Stop()

	stats := h.Stats()
	assert.Equal(t, 1, stats.ActiveUsers, "inactive user should be reaped")
	assert.Equal(t, 0, stats.ActivePairs, "the pair should be unwound")
}
