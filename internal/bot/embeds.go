package bot

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/wrrulosdev/veryx-bot/internal/giveaway"
	"github.com/wrrulosdev/veryx-bot/internal/mcstatus"
)

// Embed colors
const (
	colorGreen   = 0x2ecc71
	colorBlurple = 0x5865f2
	colorPurple  = 0x9b59b6
	colorRed     = 0xff0000
)

// Giveaway embed field names; settlement and the participant re-render
// match on these exact strings
const (
	fieldEnds         = "Ends"
	fieldEnded        = "Ended"
	fieldHostedBy     = "Hosted By"
	fieldParticipants = "Participants"
	fieldWinners      = "Winners"
)

const (
	giveawayEndedSuffix    = "🎉 The giveaway has ended!"
	giveawayNoWinnerSuffix = "😢 The giveaway ended without participants."
	noWinnersPlaceholder   = "No winners"
)

// giveawayEmbed builds the public panel for a freshly started giveaway
func giveawayEmbed(title, description string, endTime int64, hostMention string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: fieldEnds, Value: fmt.Sprintf("<t:%d:F>", endTime), Inline: false},
			{Name: fieldHostedBy, Value: hostMention, Inline: false},
			{Name: fieldParticipants, Value: "0", Inline: true},
			{Name: fieldWinners, Value: "To be determined", Inline: true},
		},
	}
}

// rebuildParticipantsEmbed re-renders a giveaway panel with a new
// participant count. Title, description and color are preserved; the
// field list is rebuilt positionally with only the Participants value
// replaced.
func rebuildParticipantsEmbed(old *discordgo.MessageEmbed, count int) *discordgo.MessageEmbed {
	rebuilt := &discordgo.MessageEmbed{
		Title:       old.Title,
		Description: old.Description,
		Color:       old.Color,
	}

	for _, field := range old.Fields {
		value := field.Value
		if field.Name == fieldParticipants {
			value = fmt.Sprintf("%d", count)
		}
		rebuilt.Fields = append(rebuilt.Fields, &discordgo.MessageEmbedField{
			Name:   field.Name,
			Value:  value,
			Inline: field.Inline,
		})
	}

	return rebuilt
}

// settledEmbed rebuilds a giveaway panel into its terminal ended state
func settledEmbed(old *discordgo.MessageEmbed, g *giveaway.Giveaway, winnersValue string, hasWinners bool) *discordgo.MessageEmbed {
	suffix := giveawayEndedSuffix
	if !hasWinners {
		suffix = giveawayNoWinnerSuffix
	}

	rebuilt := &discordgo.MessageEmbed{
		Title:       old.Title,
		Description: fmt.Sprintf("%s\n\n%s", old.Description, suffix),
		Color:       colorRed,
	}

	for _, field := range old.Fields {
		name := field.Name
		value := field.Value

		switch field.Name {
		case fieldWinners:
			value = winnersValue
		case fieldEnds:
			name = fieldEnded
			value = fmt.Sprintf("<t:%d:F>", g.EndTime)
		case fieldParticipants:
			value = fmt.Sprintf("%d", len(g.Participants))
		}

		rebuilt.Fields = append(rebuilt.Fields, &discordgo.MessageEmbedField{
			Name:   name,
			Value:  value,
			Inline: field.Inline,
		})
	}

	return rebuilt
}

// ticketPanelEmbed builds the persistent ticket-open panel
func ticketPanelEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎫 Open a ticket",
		Description: "Need help? Select the category that matches your issue below and a private channel will be created for you.",
		Color:       colorBlurple,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Veryx Network",
		},
	}
}

// userTicketEmbed builds the greeting inside a freshly created ticket channel
func userTicketEmbed(ticketLabel, mention string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s Ticket", ticketLabel),
		Description: fmt.Sprintf("%s, thank you for opening a ticket. Describe your issue and the staff team will be with you shortly.", mention),
		Color:       colorBlurple,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Veryx Network",
		},
	}
}

// ticketClosedEmbed summarizes a closed ticket for the log channel
func ticketClosedEmbed(openTime, closeTime, ownerMention, closerMention string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Ticket Closed",
		Color: colorRed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "🕒 Open Time", Value: openTime, Inline: true},
			{Name: "👤 Opened By", Value: ownerMention, Inline: true},
			{Name: "❌ Closed By", Value: closerMention, Inline: true},
			{Name: "🕒 Close Time", Value: closeTime, Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: closeTime,
		},
	}
}

// verificationEmbed builds the persistent verification panel
func verificationEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "✅ Verification",
		Description: "Press the green button below to verify yourself and unlock the rest of the server.",
		Color:       colorGreen,
	}
}

// serverEmbed renders the Minecraft server status. A nil status means the
// probe failed; the embed says so instead of erroring out.
func serverEmbed(status *mcstatus.JavaStatus, domain string) *discordgo.MessageEmbed {
	description := fmt.Sprintf("Could not reach **%s** right now. Try again in a moment.", domain)
	if status != nil && status.Online {
		description = fmt.Sprintf("**%s** is online with **%d** players. Join us!", domain, status.Players.Online)
	}

	return &discordgo.MessageEmbed{
		Title:       "🌐 Server Status",
		Description: description,
		Color:       colorPurple,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Author: &discordgo.MessageEmbedAuthor{
			Name: "Veryx Network",
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: domain,
		},
	}
}
