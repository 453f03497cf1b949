package giveaway

import (
	"sync"
)

// Giveaway holds the live state of one running giveaway.
// State is process-memory only; giveaways do not survive a restart.
type Giveaway struct {
	MessageID    string
	ChannelID    string
	EndTime      int64 // unix seconds
	WinnerCount  int
	HostID       string
	Participants []string
}

// Expired reports whether the giveaway has passed its deadline
func (g *Giveaway) Expired(now int64) bool {
	return now >= g.EndTime
}

// Registry maps giveaway message ids to their live state
type Registry struct {
	mu        sync.RWMutex
	giveaways map[string]*Giveaway
}

// NewRegistry creates an empty giveaway registry
func NewRegistry() *Registry {
	return &Registry{
		giveaways: make(map[string]*Giveaway),
	}
}

// Add registers a giveaway under its panel message id
func (r *Registry) Add(g *Giveaway) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.giveaways[g.MessageID] = g
}

// Get returns the giveaway for a message id, or nil if none is known
func (r *Registry) Get(messageID string) *Giveaway {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.giveaways[messageID]
}

// Remove drops a giveaway from the registry
func (r *Registry) Remove(messageID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.giveaways, messageID)
}

// Len returns the number of registered giveaways
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.giveaways)
}

// TakeExpired removes and returns every giveaway whose deadline has
// passed. Removal happens under the write lock, so once a giveaway is
// handed out its participant list can no longer change and the caller
// may read it without synchronization.
func (r *Registry) TakeExpired(now int64) []*Giveaway {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []*Giveaway
	for _, g := range r.giveaways {
		if g.Expired(now) {
			expired = append(expired, g)
			delete(r.giveaways, g.MessageID)
		}
	}
	return expired
}

// AddParticipant appends a user to a giveaway's participant list.
// The duplicate check happens under the lock, so a user can never be
// appended twice. Returns the participant count after the call and
// whether the user was actually added.
func (r *Registry) AddParticipant(messageID, userID string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.giveaways[messageID]
	if !ok {
		return 0, false
	}

	for _, id := range g.Participants {
		if id == userID {
			return len(g.Participants), false
		}
	}

	g.Participants = append(g.Participants, userID)
	return len(g.Participants), true
}
