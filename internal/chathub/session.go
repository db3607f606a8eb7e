package chathub

import (
	"fmt"
	"log"

	"github.com/google/uuid"
)

// matchLocked tries to pair p with the earliest waiting user. When nobody is
// available p joins the queue and ok is false. A fresh session epoch is
// stamped on both sides of a new pair, and the waiting partner gets a
// connect notification so their next pull tells them the chat is live.
func (h *Hub) matchLocked(p *Profile) (partner *Profile, ok bool) {
	// Never match with a stale copy of ourselves.
	h.queue.Remove(p.ID)

	for {
		candidateID, found := h.queue.PopNext()
		if !found {
			h.queue.Enqueue(p.ID)
			log.Printf("INFO: user %s added to waiting queue", shortID(p.ID))
			return nil, false
		}
		partner = h.users[candidateID]
		if partner == nil {
			// Reaped while waiting; keep scanning.
			continue
		}

		epoch := uuid.NewString()
		h.pairs[p.ID] = partner.ID
		h.pairs[partner.ID] = p.ID
		p.PartnerID, p.SessionEpoch = partner.ID, epoch
		partner.PartnerID, partner.SessionEpoch = p.ID, epoch

		h.pushNotificationLocked(partner.ID,
			fmt.Sprintf("🎉 Connected! You're now chatting with %s. Use #R to send and #M to check messages.", p.Nickname))

		log.Printf("INFO: matched users %s <-> %s", shortID(p.ID), shortID(partner.ID))
		return partner, true
	}
}

// endChatLocked tears down p's session. Both directions of the pair are
// cleared in one step and the partner is notified exactly once; p is not
// re-enqueued. When p was only waiting, queue membership is dropped instead.
// Returns the former partner, or nil if p had none.
func (h *Hub) endChatLocked(p *Profile) *Profile {
	partnerID, paired := h.pairs[p.ID]
	if !paired {
		h.queue.Remove(p.ID)
		return nil
	}

	delete(h.pairs, p.ID)
	delete(h.pairs, partnerID)
	p.PartnerID, p.SessionEpoch = "", ""

	partner := h.users[partnerID]
	if partner != nil {
		partner.PartnerID, partner.SessionEpoch = "", ""
	}
	h.pushNotificationLocked(partnerID, "Your partner left the chat. Use #meet to find a new one.")

	log.Printf("INFO: ended chat between %s and %s", shortID(p.ID), shortID(partnerID))
	return partner
}

// partnerLocked resolves p's current partner profile, or nil.
func (h *Hub) partnerLocked(p *Profile) *Profile {
	partnerID, ok := h.pairs[p.ID]
	if !ok {
		return nil
	}
	return h.users[partnerID]
}
