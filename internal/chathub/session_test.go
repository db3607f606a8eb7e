package chathub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"randomconnect/backend/internal/config"
)

func newTestHub() *Hub {
	return NewHub(config.Defaults())
}

func TestMatch_PairSymmetryAndSharedEpoch(t *testing.T) {
	h := newTestHub()
	h.Process("user_A", "#meet", "Alice")
	h.Process("user_B", "#meet", "Bob")

	a := h.users["user_A"]
	b := h.users["user_B"]
	require.NotNil(t, a)
	require.NotNil(t, b)

	assert.Equal(t, "user_B", h.pairs["user_A"])
	assert.Equal(t, "user_A", h.pairs["user_B"])
	assert.Equal(t, "user_B", a.PartnerID)
	assert.Equal(t, "user_A", b.PartnerID)
	require.NotEmpty(t, a.SessionEpoch)
	assert.Equal(t, a.SessionEpoch, b.SessionEpoch, "both sides must carry the same epoch")
}

func TestMatch_FIFOFairness(t *testing.T) {
	// Waiting order [A, B, C]; newcomer D must pair with A.
	h := newTestHub()
	h.Process("user_A", "#meet", "")
	h.Process("user_B", "#meet", "")
	h.Process("user_C", "#meet", "")
	h.Process("user_D", "#meet", "")

	assert.Equal(t, "user_A", h.pairs["user_D"])
	assert.True(t, h.queue.Contains("user_B"))
	assert.True(t, h.queue.Contains("user_C"))
}

func TestMatch_ExclusivityOfWaitingAndPaired(t *testing.T) {
	h := newTestHub()
	h.Process("user_A", "#meet", "")
	assert.True(t, h.queue.Contains("user_A"), "unmatched user waits")

	h.Process("user_B", "#meet", "")
	// Once paired, neither side may remain in the queue.
	assert.False(t, h.queue.Contains("user_A"))
	assert.False(t, h.queue.Contains("user_B"))
	assert.Contains(t, h.pairs, "user_A")
	assert.Contains(t, h.pairs, "user_B")
}

func TestMatch_SkipsReapedQueueEntries(t *testing.T) {
	h := newTestHub()
	h.Process("user_A", "#meet", "")
	h.Process("user_B", "#meet", "")
	h.Process("user_A", "#bye", "") // A and B idle again
	h.Process("user_A", "#meet", "")

	// Simulate A being reaped while still sitting in the queue without the
	// queue entry having been cleared.
	delete(h.users, "user_A")

	h.Process("user_C", "#meet", "")
	assert.NotContains(t, h.pairs, "user_C", "C must not pair with a deleted user")
	assert.True(t, h.queue.Contains("user_C"), "C falls back to waiting")
}

func TestRematch_EpochFreshness(t *testing.T) {
	h := newTestHub()
	h.Process("user_A", "#meet", "")
	h.Process("user_B", "#meet", "")
	first := h.users["user_A"].SessionEpoch
	require.NotEmpty(t, first)

	// A rotates; C is waiting, so A re-pairs immediately.
	h.Process("user_C", "#meet", "")
	h.Process("user_A", "#again", "")

	second := h.users["user_A"].SessionEpoch
	require.NotEmpty(t, second)
	assert.NotEqual(t, first, second, "re-pairing must mint a fresh epoch")
	assert.Equal(t, second, h.users["user_C"].SessionEpoch)
}

func TestEndChat_NotifiesPartnerExactlyOnce(t *testing.T) {
	h := newTestHub()
	h.Process("user_A", "#meet", "")
	h.Process("user_B", "#meet", "")

	h.Process("user_A", "#bye", "")

	assert.NotContains(t, h.pairs, "user_A")
	assert.NotContains(t, h.pairs, "user_B")
	assert.Empty(t, h.users["user_B"].SessionEpoch)

	notes := h.notifications["user_B"]
	count := 0
	for _, n := range notes {
		if n == "Your partner left the chat. Use #meet to find a new one." {
			count++
		}
	}
	assert.Equal(t, 1, count, "partner must get exactly one disconnect notification")
	assert.False(t, h.queue.Contains("user_A"), "the ender is not auto-requeued")
}

func TestEndChat_WhileWaitingLeavesQueue(t *testing.T) {
	h := newTestHub()
	h.Process("user_A", "#meet", "")
	require.True(t, h.queue.Contains("user_A"))

	reply := h.Process("user_A", "#bye", "")
	assert.Equal(t, replyNotInChat, reply)
	assert.False(t, h.queue.Contains("user_A"))
}

func TestCleanupInactive_ReapsPairedUserAndNotifiesPartner(t *testing.T) {
	h := newTestHub()
	h.Process("user_A", "#meet", "")
	h.Process("user_B", "#meet", "")

	h.users["user_A"].LastActivity = time.Now().Add(-time.Hour)

	removed := h.CleanupInactive(30 * time.Minute)
	assert.Equal(t, 1, removed)

	// A's profile and mailboxes are gone entirely.
	assert.NotContains(t, h.users, "user_A")
	assert.NotContains(t, h.notifications, "user_A")
	assert.NotContains(t, h.messages, "user_A")

	// B is unpaired and told about it.
	assert.NotContains(t, h.pairs, "user_B")
	assert.Contains(t, h.notifications["user_B"], "Your partner left the chat. Use #meet to find a new one.")
}

func TestCleanupInactive_ReapsWaitingUser(t *testing.T) {
	h := newTestHub()
	h.Process("user_A", "#meet", "")
	h.users["user_A"].LastActivity = time.Now().Add(-time.Hour)

	removed := h.CleanupInactive(30 * time.Minute)
	assert.Equal(t, 1, removed)
	assert.False(t, h.queue.Contains("user_A"))
	assert.Equal(t, 0, h.Stats().WaitingUsers)
}

func TestCleanupInactive_KeepsActiveUsers(t *testing.T) {
	h := newTestHub()
	h.Process("user_A", "#meet", "")
	assert.Equal(t, 0, h.CleanupInactive(30*time.Minute))
	assert.Contains(t, h.users, "user_A")
}
