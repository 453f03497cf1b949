package bot

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// handleServer handles the /server command
func (b *Bot) handleServer(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := deferResponse(s, i, true); err != nil {
		slog.Error("Failed to defer server response", "error", err)
		return
	}

	status, err := b.status.GetJavaStatus(b.config.ServerDomain)
	if err != nil {
		slog.Warn("Could not get data from server", "domain", b.config.ServerDomain, "error", err)
		status = nil
	}

	embed := serverEmbed(status, b.config.ServerDomain)
	_, err = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		slog.Error("Failed to send server embed", "error", err)
	}
}
