package bot

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

// relayTimeout bounds how long /send_message waits for the human-authored
// reply; it is the only bounded wait in the bot
const relayTimeout = 60 * time.Second

// attachmentClient downloads relayed attachments for re-upload
var attachmentClient = &http.Client{
	Timeout: 10 * time.Second,
}

// pendingRelay is one /send_message invocation waiting for its author to
// write the message in the target channel
type pendingRelay struct {
	userID      string
	channelID   string
	interaction *discordgo.Interaction
	timer       *time.Timer
}

// relayRegistry tracks pending message relays
type relayRegistry struct {
	mu      sync.Mutex
	pending []*pendingRelay
}

func newRelayRegistry() *relayRegistry {
	return &relayRegistry{}
}

// Add registers a pending relay
func (r *relayRegistry) Add(relay *pendingRelay) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, relay)
}

// Take removes and returns the pending relay matching an author and
// channel, or nil if there is none
func (r *relayRegistry) Take(userID, channelID string) *pendingRelay {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx, relay := range r.pending {
		if relay.userID == userID && relay.channelID == channelID {
			r.pending = append(r.pending[:idx], r.pending[idx+1:]...)
			return relay
		}
	}
	return nil
}

// Drop removes a specific relay if it is still pending
func (r *relayRegistry) Drop(relay *pendingRelay) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx, candidate := range r.pending {
		if candidate == relay {
			r.pending = append(r.pending[:idx], r.pending[idx+1:]...)
			return true
		}
	}
	return false
}

// handleSendMessage handles the /send_message command
func (b *Bot) handleSendMessage(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !memberIsAdmin(i) {
		respondEphemeral(s, i, "You do not have permission to use this command.")
		return
	}

	channel := i.ApplicationCommandData().Options[0].ChannelValue(s)
	if channel == nil {
		respondEphemeral(s, i, "That channel could not be resolved.")
		return
	}

	if err := deferResponse(s, i, true); err != nil {
		slog.Error("Failed to defer send_message response", "error", err)
		return
	}

	followUpEphemeral(s, i, "Write the message in <#"+channel.ID+"> within 60 seconds and I will repost it.")

	relay := &pendingRelay{
		userID:      i.Member.User.ID,
		channelID:   channel.ID,
		interaction: i.Interaction,
	}
	relay.timer = time.AfterFunc(relayTimeout, func() {
		if b.relays.Drop(relay) {
			followUpEphemeral(s, i, "Timed out waiting for your message.")
		}
	})
	b.relays.Add(relay)
}

// downloadAttachment fetches an attachment body from the Discord CDN.
// The caller closes the returned body.
func downloadAttachment(url string) (io.ReadCloser, error) {
	resp, err := attachmentClient.Get(url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

// deliverRelay reposts a relayed message as the bot and removes the
// author's original. Returns false when the message completes no relay.
func (b *Bot) deliverRelay(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	relay := b.relays.Take(m.Author.ID, m.ChannelID)
	if relay == nil {
		return false
	}
	relay.timer.Stop()

	if m.Content != "" {
		if _, err := s.ChannelMessageSend(relay.channelID, m.Content); err != nil {
			slog.Error("Failed to repost relayed message", "channelID", relay.channelID, "error", err)
		}
	}

	for _, attachment := range m.Attachments {
		body, err := downloadAttachment(attachment.URL)
		if err != nil {
			slog.Error("Failed to download relayed attachment", "url", attachment.URL, "error", err)
			continue
		}
		if _, err := s.ChannelFileSend(relay.channelID, attachment.Filename, body); err != nil {
			slog.Error("Failed to repost relayed attachment", "filename", attachment.Filename, "error", err)
		}
		body.Close()
	}

	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		slog.Debug("Could not delete relayed original", "messageID", m.ID, "error", err)
	}

	_, err := s.FollowupMessageCreate(relay.interaction, true, &discordgo.WebhookParams{
		Content: "Message sent.",
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		slog.Error("Failed to confirm relay", "error", err)
	}

	return true
}
