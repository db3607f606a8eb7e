package chathub

// WaitQueue is a FIFO of user IDs awaiting a partner, with O(1) membership
// test and amortized O(1) add/remove. Removal from the middle tombstones the
// slot by dropping it from the presence map; PopNext skips tombstones, and a
// compaction pass rebuilds the backing slice once dead slots dominate.
// Slots carry a sequence number so a user who leaves and re-enqueues gets a
// fresh tail position instead of resurrecting their old slot.
// The queue is not safe for concurrent use; the Hub's mutex guards it.
type WaitQueue struct {
	entries []waitSlot
	live    map[string]uint64 // id -> seq of its one live slot
	seq     uint64
}

type waitSlot struct {
	id  string
	seq uint64
}

// NewWaitQueue returns an empty queue.
func NewWaitQueue() *WaitQueue {
	return &WaitQueue{live: make(map[string]uint64)}
}

// Enqueue appends id to the tail. No-op if already queued.
func (q *WaitQueue) Enqueue(id string) {
	if _, ok := q.live[id]; ok {
		return
	}
	q.seq++
	q.entries = append(q.entries, waitSlot{id: id, seq: q.seq})
	q.live[id] = q.seq
}

// Remove deletes id from the queue if present, else no-op. The head slot is
// dropped eagerly; anything deeper becomes a tombstone.
func (q *WaitQueue) Remove(id string) {
	seq, ok := q.live[id]
	if !ok {
		return
	}
	delete(q.live, id)
	if len(q.entries) > 0 && q.entries[0].seq == seq {
		q.entries = q.entries[1:]
		return
	}
	q.maybeCompact()
}

// Contains reports whether id is live in the queue.
func (q *WaitQueue) Contains(id string) bool {
	_, ok := q.live[id]
	return ok
}

// Len is the number of live entries.
func (q *WaitQueue) Len() int {
	return len(q.live)
}

// PopNext removes and returns the earliest-enqueued live entry, scanning past
// tombstones left by Remove. ok is false when the queue is exhausted.
func (q *WaitQueue) PopNext() (id string, ok bool) {
	for len(q.entries) > 0 {
		head := q.entries[0]
		q.entries = q.entries[1:]
		if seq, exists := q.live[head.id]; exists && seq == head.seq {
			delete(q.live, head.id)
			return head.id, true
		}
	}
	return "", false
}

// maybeCompact rebuilds the backing slice when tombstones outnumber live
// slots, keeping memory proportional to the live count.
func (q *WaitQueue) maybeCompact() {
	if len(q.entries) < 16 || len(q.entries) < 2*len(q.live) {
		return
	}
	alive := make([]waitSlot, 0, len(q.live))
	for _, s := range q.entries {
		if seq, ok := q.live[s.id]; ok && seq == s.seq {
			alive = append(alive, s)
		}
	}
	q.entries = alive
}
