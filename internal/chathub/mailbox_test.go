package chathub

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageQueue_CapDropsOldestFirst(t *testing.T) {
	h := newTestHub()
	for i := 1; i <= 101; i++ {
		h.pushMessageLocked("user_B", fmt.Sprintf("msg-%d", i))
	}

	q := h.messages["user_B"]
	require.Len(t, q, 100, "queue must hold exactly the most recent 100")
	assert.Equal(t, "msg-2", q[0], "oldest entry is evicted first")
	assert.Equal(t, "msg-101", q[99])
}

func TestNotificationQueue_KeepsMostRecent(t *testing.T) {
	h := newTestHub()
	for i := 1; i <= 5; i++ {
		h.pushNotificationLocked("user_B", fmt.Sprintf("note-%d", i))
	}

	q := h.notifications["user_B"]
	require.Len(t, q, h.cfg.NotifyDrainLimit)
	assert.Equal(t, []string{"note-3", "note-4", "note-5"}, q)
}

func TestDrain_IsDestructiveAndLimited(t *testing.T) {
	h := newTestHub()
	for i := 1; i <= 8; i++ {
		h.pushMessageLocked("user_B", fmt.Sprintf("msg-%d", i))
	}
	h.pushNotificationLocked("user_B", "note-1")

	notes, msgs := h.drainLocked("user_B")
	assert.Equal(t, []string{"note-1"}, notes)
	assert.Equal(t, []string{"msg-4", "msg-5", "msg-6", "msg-7", "msg-8"}, msgs,
		"drain returns the most recent MessageDrainLimit messages")

	// Both queues are cleared, not just read.
	notes, msgs = h.drainLocked("user_B")
	assert.Empty(t, notes)
	assert.Empty(t, msgs)
}

func TestPopQueued_RespectsLimit(t *testing.T) {
	h := newTestHub()
	for i := 1; i <= 12; i++ {
		h.pushMessageLocked("user_B", fmt.Sprintf("msg-%d", i))
	}

	got := h.popQueuedLocked("user_B", 10)
	require.Len(t, got, 10)
	assert.Equal(t, "msg-3", got[0])
	assert.Equal(t, "msg-12", got[9])
	assert.Nil(t, h.popQueuedLocked("user_B", 10), "pop is destructive")
}
