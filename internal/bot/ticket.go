package bot

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/wrrulosdev/veryx-bot/internal/storage"
	"github.com/wrrulosdev/veryx-bot/internal/transcript"
)

// Identifier Store slot names for the ticket panel
const (
	slotTicketChannel = "TICKET_CHANNEL"
	slotTicketMessage = "TICKET_MESSAGE"
)

// ticketType is one selectable ticket category
type ticketType struct {
	Value       string
	Label       string
	Description string
	Emoji       string
}

var ticketTypes = []ticketType{
	{"support", "Support", "General help with the server", "🛠️"},
	{"account", "Account", "Account or login issues", "🔑"},
	{"media", "Media", "Apply for the media rank", "🎬"},
	{"ban", "Ban Appeal", "Appeal a ban or mute", "🚫"},
	{"rewards", "Rewards", "Missing or broken rewards", "🎁"},
	{"ftop-report", "F-Top Report", "Report an f-top issue", "📊"},
	{"staff-report", "Staff Report", "Report a staff member", "👨‍💻"},
	{"user-report", "User Report", "Report a player", "🧑‍💻"},
	{"bug-report", "Bug Report", "Report a bug", "🐛"},
	{"buycraft", "Store", "Store or purchase issues", "💳"},
}

// isTicketChannelName reports whether a channel name carries one of the
// recognized ticket-type prefixes
func isTicketChannelName(name string) bool {
	for _, t := range ticketTypes {
		if strings.HasPrefix(name, t.Value+"-ticket-") {
			return true
		}
	}
	return false
}

// ticketChannelName builds the channel name for a member's ticket
func ticketChannelName(ticketValue, displayName string) string {
	sanitized := strings.ToLower(strings.ReplaceAll(displayName, " ", "-"))
	return fmt.Sprintf("%s-ticket-%s", ticketValue, sanitized)
}

// ticketPanelComponents builds the category dropdown bound to the panel
func ticketPanelComponents() []discordgo.MessageComponent {
	options := make([]discordgo.SelectMenuOption, 0, len(ticketTypes))
	for _, t := range ticketTypes {
		options = append(options, discordgo.SelectMenuOption{
			Label:       t.Label,
			Value:       t.Value,
			Description: t.Description,
			Emoji:       &discordgo.ComponentEmoji{Name: t.Emoji},
		})
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					MenuType:    discordgo.StringSelectMenu,
					CustomID:    componentTicketDropdown,
					Placeholder: "Select a ticket category",
					Options:     options,
				},
			},
		},
	}
}

// closeTicketComponents builds the close button sent inside a ticket
func closeTicketComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Style:    discordgo.DangerButton,
					Label:    "Close Ticket",
					CustomID: componentCloseTicket,
				},
			},
		},
	}
}

// handleSendTicket handles the /send_ticket command
func (b *Bot) handleSendTicket(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !memberIsAdmin(i) {
		respondEphemeral(s, i, "You do not have permission to use this command.")
		return
	}

	// Drop the previous panel if it still resolves
	channelRec, err := b.repo.IdentifierByName(slotTicketChannel)
	if err != nil {
		slog.Error("Failed to look up ticket channel", "error", err)
	}
	messageRec, err := b.repo.IdentifierByName(slotTicketMessage)
	if err != nil {
		slog.Error("Failed to look up ticket message", "error", err)
	}

	if channelRec != nil && messageRec != nil {
		if _, err := s.Channel(channelRec.ObjectID); err == nil {
			if err := s.ChannelMessageDelete(channelRec.ObjectID, messageRec.ObjectID); err != nil {
				slog.Debug("Could not delete previous ticket panel", "error", err)
			}
		}
	}

	panel, err := s.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{ticketPanelEmbed()},
		Components: ticketPanelComponents(),
	})
	if err != nil {
		slog.Error("Failed to send ticket panel", "error", err)
		respondEphemeral(s, i, "Failed to set up the ticket panel.")
		return
	}

	respondEphemeral(s, i, "Ticket panel set up.")

	if err := b.repo.PutIdentifier(i.ChannelID, slotTicketChannel, storage.KindChannel); err != nil {
		slog.Error("Failed to persist ticket channel id", "error", err)
	}
	if err := b.repo.PutIdentifier(panel.ID, slotTicketMessage, storage.KindMessage); err != nil {
		slog.Error("Failed to persist ticket message id", "error", err)
	}
}

// handleTicketSelect creates a ticket channel for the selecting member
func (b *Bot) handleTicketSelect(s *discordgo.Session, i *discordgo.InteractionCreate) {
	values := i.MessageComponentData().Values
	if len(values) == 0 || i.Member == nil {
		return
	}

	var selected *ticketType
	for idx := range ticketTypes {
		if ticketTypes[idx].Value == values[0] {
			selected = &ticketTypes[idx]
			break
		}
	}
	if selected == nil {
		respondEphemeral(s, i, "Unknown ticket category.")
		return
	}

	if _, err := s.Channel(b.config.TicketCategoryID); err != nil {
		slog.Error("Ticket category not found", "categoryID", b.config.TicketCategoryID, "error", err)
		respondEphemeral(s, i, "An error occurred while setting up your ticket. Contact an administrator.")
		return
	}

	user := i.Member.User
	displayName := i.Member.Nick
	if displayName == "" {
		displayName = user.Username
	}
	channelName := ticketChannelName(selected.Value, displayName)

	// One open ticket per member and category
	channels, err := s.GuildChannels(i.GuildID)
	if err != nil {
		slog.Error("Failed to list guild channels", "error", err)
		respondEphemeral(s, i, "An error occurred while setting up your ticket. Try again later.")
		return
	}
	for _, channel := range channels {
		if channel.Name == channelName {
			respondEphemeral(s, i, "You already have an open ticket of this type.")
			return
		}
	}

	ticketChannel, err := s.GuildChannelCreateComplex(i.GuildID, discordgo.GuildChannelCreateData{
		Name:     channelName,
		Type:     discordgo.ChannelTypeGuildText,
		ParentID: b.config.TicketCategoryID,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{
				// @everyone shares its id with the guild
				ID:   i.GuildID,
				Type: discordgo.PermissionOverwriteTypeRole,
				Deny: discordgo.PermissionViewChannel,
			},
			{
				ID:    user.ID,
				Type:  discordgo.PermissionOverwriteTypeMember,
				Allow: discordgo.PermissionViewChannel,
			},
			{
				ID:    b.config.StaffRoleID,
				Type:  discordgo.PermissionOverwriteTypeRole,
				Allow: discordgo.PermissionViewChannel,
			},
		},
	})
	if err != nil {
		slog.Error("Failed to create ticket channel", "name", channelName, "error", err)
		respondEphemeral(s, i, "Your ticket could not be created. Contact an administrator.")
		return
	}

	_, err = s.ChannelMessageSendComplex(ticketChannel.ID, &discordgo.MessageSend{
		Content:    fmt.Sprintf("%s | <@&%s>", user.Mention(), b.config.StaffRoleID),
		Embeds:     []*discordgo.MessageEmbed{userTicketEmbed(selected.Label, user.Mention())},
		Components: closeTicketComponents(),
	})
	if err != nil {
		slog.Error("Failed to send ticket greeting", "channelID", ticketChannel.ID, "error", err)
	}

	respondEphemeral(s, i, fmt.Sprintf("Your ticket has been created: <#%s>", ticketChannel.ID))

	// The opener's user id is the record name; closing resolves it back
	if err := b.repo.PutIdentifier(ticketChannel.ID, user.ID, storage.KindTicket); err != nil {
		slog.Error("Failed to persist ticket ownership", "channelID", ticketChannel.ID, "error", err)
	}

	// Refresh the panel so the dropdown selection resets
	if err := b.refreshPanelView(s, i.ChannelID, i.Message.ID, ticketPanelComponents()); err != nil {
		slog.Debug("Could not refresh ticket panel", "error", err)
	}
}

// handleCloseTicket handles the close button inside a ticket channel
func (b *Bot) handleCloseTicket(s *discordgo.Session, i *discordgo.InteractionCreate) {
	channel, err := s.Channel(i.ChannelID)
	if err != nil {
		slog.Error("Failed to fetch ticket channel", "channelID", i.ChannelID, "error", err)
		return
	}

	if !isTicketChannelName(channel.Name) {
		respondEphemeral(s, i, "This is not a ticket channel.")
		return
	}

	if !b.memberIsStaff(i) {
		respondEphemeral(s, i, "You do not have permission to close tickets.")
		return
	}

	respondEphemeral(s, i, "Closing ticket...")

	ownerRec, err := b.repo.IdentifierByObjectID(i.ChannelID)
	if err != nil {
		slog.Error("Failed to look up ticket owner", "channelID", i.ChannelID, "error", err)
	}
	if ownerRec == nil {
		followUpEphemeral(s, i, "No ticket owner could be resolved for this channel.")
		return
	}

	ownerID := ownerRec.Name
	owner, err := s.GuildMember(i.GuildID, ownerID)
	if err != nil || owner == nil {
		followUpEphemeral(s, i, "No ticket owner could be resolved for this channel.")
		return
	}

	html, err := transcript.Export(s, channel.ID, channel.Name)
	if err != nil {
		slog.Warn("Failed to export ticket transcript", "channelID", channel.ID, "error", err)
	}

	openTime := "unknown"
	if created, err := discordgo.SnowflakeTimestamp(channel.ID); err == nil {
		openTime = created.UTC().Format("02/01/2006 15:04")
	}
	closeTime := time.Now().UTC().Format("02/01/2006 15:04")

	summary := ticketClosedEmbed(openTime, closeTime, owner.User.Mention(), i.Member.User.Mention())
	if _, err := s.ChannelMessageSendEmbed(b.config.TicketLogsChannelID, summary); err != nil {
		slog.Error("Failed to send ticket log", "error", err)
	}
	if html != "" {
		filename := fmt.Sprintf("transcript-%s.html", channel.Name)
		if _, err := s.ChannelFileSend(b.config.TicketLogsChannelID, filename, strings.NewReader(html)); err != nil {
			slog.Error("Failed to upload ticket transcript", "error", err)
		}
	}

	followUpEphemeral(s, i, fmt.Sprintf("Ticket closed by %s.", i.Member.User.Username))

	if _, err := s.ChannelDelete(i.ChannelID); err != nil {
		slog.Error("Failed to delete ticket channel", "channelID", i.ChannelID, "error", err)
	}

	if err := b.repo.RemoveIdentifier(ownerID); err != nil {
		slog.Error("Failed to remove ticket ownership record", "ownerID", ownerID, "error", err)
	}
}
