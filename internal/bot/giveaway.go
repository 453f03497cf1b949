package bot

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/wrrulosdev/veryx-bot/internal/giveaway"
)

const giveawayEmoji = "🎉"

// handleGiveaway handles the /giveaway command
func (b *Bot) handleGiveaway(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !memberIsAdmin(i) {
		respondEphemeral(s, i, "You do not have permission to use this command.")
		return
	}

	options := i.ApplicationCommandData().Options
	title := options[0].StringValue()
	description := options[1].StringValue()
	winnerCount := int(options[2].IntValue())
	durationStr := options[3].StringValue()

	if err := deferResponse(s, i, false); err != nil {
		slog.Error("Failed to defer giveaway response", "error", err)
		return
	}

	durationSeconds, err := giveaway.ParseDuration(durationStr)
	if err != nil {
		editResponse(s, i, fmt.Sprintf("Invalid duration `%s`. Use tokens like `1d`, `2h` or `30m`.", durationStr))
		return
	}

	endTime := time.Now().Unix() + durationSeconds
	embed := giveawayEmbed(title, description, endTime, i.Member.User.Mention())

	message, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		slog.Error("Failed to send giveaway panel", "error", err)
		return
	}

	if err := s.MessageReactionAdd(message.ChannelID, message.ID, giveawayEmoji); err != nil {
		slog.Warn("Failed to add giveaway reaction", "messageID", message.ID, "error", err)
	}

	b.giveaways.Add(&giveaway.Giveaway{
		MessageID:   message.ID,
		ChannelID:   message.ChannelID,
		EndTime:     endTime,
		WinnerCount: winnerCount,
		HostID:      i.Member.User.ID,
	})

	slog.Info("Giveaway started", "messageID", message.ID, "winners", winnerCount, "endTime", endTime)
}

// handleReactionAdd admits participants into running giveaways
func (b *Bot) handleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.UserID == s.State.User.ID {
		return
	}
	if r.Member != nil && r.Member.User != nil && r.Member.User.Bot {
		return
	}

	g := b.giveaways.Get(r.MessageID)
	if g == nil {
		return
	}

	if r.Emoji.Name != giveawayEmoji {
		b.retractReaction(s, r)
		return
	}

	if g.Expired(time.Now().Unix()) {
		b.retractReaction(s, r)
		b.sendTransientNotice(s, g.ChannelID, fmt.Sprintf("<@%s>, that giveaway has already ended.", r.UserID), 10*time.Second)
		return
	}

	count, added := b.giveaways.AddParticipant(r.MessageID, r.UserID)
	if !added {
		b.retractReaction(s, r)
		return
	}

	message, err := s.ChannelMessage(r.ChannelID, r.MessageID)
	if err != nil || len(message.Embeds) == 0 {
		// Panel gone or stripped; the entry still counts
		slog.Debug("Could not fetch giveaway panel for re-render", "messageID", r.MessageID, "error", err)
		return
	}

	rebuilt := rebuildParticipantsEmbed(message.Embeds[0], count)
	if _, err := s.ChannelMessageEditEmbed(r.ChannelID, r.MessageID, rebuilt); err != nil {
		slog.Debug("Could not update giveaway participant count", "messageID", r.MessageID, "error", err)
	}
}

// retractReaction removes a rejected giveaway reaction. The reaction may
// already be gone; that is fine.
func (b *Bot) retractReaction(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if err := s.MessageReactionRemove(r.ChannelID, r.MessageID, r.Emoji.APIName(), r.UserID); err != nil {
		slog.Debug("Could not retract reaction", "messageID", r.MessageID, "userID", r.UserID, "error", err)
	}
}

// sendTransientNotice posts a message and deletes it again after ttl
func (b *Bot) sendTransientNotice(s *discordgo.Session, channelID, content string, ttl time.Duration) {
	message, err := s.ChannelMessageSend(channelID, content)
	if err != nil {
		slog.Debug("Could not send notice", "channelID", channelID, "error", err)
		return
	}

	time.AfterFunc(ttl, func() {
		if err := s.ChannelMessageDelete(channelID, message.ID); err != nil {
			slog.Debug("Could not delete notice", "messageID", message.ID, "error", err)
		}
	})
}

// settleGiveaway finishes an expired giveaway the scheduler has already
// taken out of the registry, so the participant list is stable here.
// Draws winners, rewrites the panel and announces the result; a deleted
// panel message is tolerated.
func (b *Bot) settleGiveaway(g *giveaway.Giveaway) {
	message, err := b.session.ChannelMessage(g.ChannelID, g.MessageID)
	if err != nil || len(message.Embeds) == 0 {
		slog.Debug("Giveaway panel no longer available", "messageID", g.MessageID, "error", err)
		return
	}

	winners := drawWinners(g.Participants, g.WinnerCount)
	winnersValue := noWinnersPlaceholder

	mentions := make([]string, 0, len(winners))
	for _, winnerID := range winners {
		mentions = append(mentions, fmt.Sprintf("<@%s>", winnerID))
	}
	if len(mentions) > 0 {
		winnersValue = strings.Join(mentions, ", ")
	}

	rebuilt := settledEmbed(message.Embeds[0], g, winnersValue, len(winners) > 0)
	if _, err := b.session.ChannelMessageEditEmbed(g.ChannelID, g.MessageID, rebuilt); err != nil {
		slog.Debug("Could not edit settled giveaway panel", "messageID", g.MessageID, "error", err)
	}

	if len(mentions) > 0 {
		announcement := fmt.Sprintf("Congratulations %s! You won the giveaway! %s", strings.Join(mentions, ", "), giveawayEmoji)
		if _, err := b.session.ChannelMessageSend(g.ChannelID, announcement); err != nil {
			slog.Debug("Could not announce giveaway winners", "messageID", g.MessageID, "error", err)
		}
	}

	slog.Info("Giveaway settled", "messageID", g.MessageID, "participants", len(g.Participants), "winners", len(winners))
}

// drawWinners picks up to count distinct participants uniformly at random.
// Returns nil when there are no participants.
func drawWinners(participants []string, count int) []string {
	if len(participants) == 0 {
		return nil
	}
	if count > len(participants) {
		count = len(participants)
	}

	perm := rand.Perm(len(participants))
	winners := make([]string, 0, count)
	for _, idx := range perm[:count] {
		winners = append(winners, participants[idx])
	}
	return winners
}
