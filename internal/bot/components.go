package bot

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Component custom ids. These are stable across restarts so persisted
// panel messages keep dispatching to the right handler.
const (
	componentTicketDropdown = "ticket_dropdown"
	componentCloseTicket    = "close_ticket"
	componentVerifyButton   = "verify_button"
	componentRedButtonLeft  = "red_button_left"
	componentRedButtonRight = "red_button_right"
)

// ComponentHandler processes a message-component interaction
type ComponentHandler func(s *discordgo.Session, i *discordgo.InteractionCreate)

// componentRegistry maps component custom ids to their handlers
type componentRegistry struct {
	mu       sync.RWMutex
	handlers map[string]ComponentHandler
}

func newComponentRegistry() *componentRegistry {
	return &componentRegistry{
		handlers: make(map[string]ComponentHandler),
	}
}

// Register adds a handler for a component custom id
func (r *componentRegistry) Register(customID string, handler ComponentHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[customID] = handler
}

// Get retrieves the handler for a custom id
func (r *componentRegistry) Get(customID string) (ComponentHandler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok := r.handlers[customID]
	return handler, ok
}
