package chathub

// Per-user mailboxes: two independent bounded queues, one for system
// notifications and one for relayed partner messages. Both are drained
// destructively when the user next pulls.

// pushNotificationLocked appends a system notification, retaining only the
// most recent NotifyDrainLimit entries.
func (h *Hub) pushNotificationLocked(userID, note string) {
	q := append(h.notifications[userID], note)
	if n := h.cfg.NotifyDrainLimit; len(q) > n {
		q = q[len(q)-n:]
	}
	h.notifications[userID] = q
}

// pushMessageLocked appends a relayed message, dropping the oldest entry once
// the queue exceeds MessageQueueCap. Overflow is silent for both parties.
func (h *Hub) pushMessageLocked(userID, msg string) {
	q := append(h.messages[userID], msg)
	if len(q) > h.cfg.MessageQueueCap {
		q = q[1:]
	}
	h.messages[userID] = q
}

// drainLocked removes and returns everything pending for userID, truncated to
// the configured drain limits (most recent kept).
func (h *Hub) drainLocked(userID string) (notifications, messages []string) {
	notifications = h.notifications[userID]
	messages = h.messages[userID]
	delete(h.notifications, userID)
	delete(h.messages, userID)

	if n := h.cfg.NotifyDrainLimit; len(notifications) > n {
		notifications = notifications[len(notifications)-n:]
	}
	if n := h.cfg.MessageDrainLimit; len(messages) > n {
		messages = messages[len(messages)-n:]
	}
	return notifications, messages
}

// popQueuedLocked removes and returns up to limit of the most recent relayed
// messages, used by permissive mode to piggyback on a send reply.
func (h *Hub) popQueuedLocked(userID string, limit int) []string {
	msgs := h.messages[userID]
	if len(msgs) == 0 {
		return nil
	}
	delete(h.messages, userID)
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs
}
