package bot

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/wrrulosdev/veryx-bot/internal/storage"
)

// Identifier Store slot names for the verification panel
const (
	slotVerificationChannel = "VERIFICATION_CHANNEL"
	slotVerificationMessage = "VERIFICATION_MESSAGE"
	slotVerificationRole    = "VERIFICATION_ROLE"
)

// verificationComponents builds the three-button verification row.
// Only the middle button verifies; the red ones are decoys.
func verificationComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Style:    discordgo.DangerButton,
					Label:    "Verify",
					CustomID: componentRedButtonLeft,
				},
				discordgo.Button{
					Style:    discordgo.SuccessButton,
					Label:    "Verify",
					CustomID: componentVerifyButton,
				},
				discordgo.Button{
					Style:    discordgo.DangerButton,
					Label:    "Verify",
					CustomID: componentRedButtonRight,
				},
			},
		},
	}
}

// handleSendVerification handles the /send_verification command
func (b *Bot) handleSendVerification(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !memberIsAdmin(i) {
		respondEphemeral(s, i, "You do not have permission to use this command.")
		return
	}

	role := i.ApplicationCommandData().Options[0].RoleValue(s, i.GuildID)
	if role == nil {
		respondEphemeral(s, i, "That role does not exist in this server.")
		return
	}

	respondEphemeral(s, i, "Verification panel sent.")

	panel, err := s.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{verificationEmbed()},
		Components: verificationComponents(),
	})
	if err != nil {
		slog.Error("Failed to send verification panel", "error", err)
		return
	}

	if err := b.repo.PutIdentifier(i.ChannelID, slotVerificationChannel, storage.KindChannel); err != nil {
		slog.Error("Failed to persist verification channel id", "error", err)
	}
	if err := b.repo.PutIdentifier(panel.ID, slotVerificationMessage, storage.KindMessage); err != nil {
		slog.Error("Failed to persist verification message id", "error", err)
	}
	if err := b.repo.PutIdentifier(role.ID, slotVerificationRole, storage.KindRole); err != nil {
		slog.Error("Failed to persist verification role id", "error", err)
	}
}

// handleVerifyButton assigns the verification role to the clicking member
func (b *Bot) handleVerifyButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	roleRec, err := b.repo.IdentifierByName(slotVerificationRole)
	if err != nil {
		slog.Error("Failed to look up verification role", "error", err)
	}
	if roleRec == nil {
		respondEphemeral(s, i, "The verification role is not configured. Contact an administrator.")
		return
	}

	if err := s.GuildMemberRoleAdd(i.GuildID, i.Member.User.ID, roleRec.ObjectID); err != nil {
		slog.Error("Failed to assign verification role", "userID", i.Member.User.ID, "error", err)
		respondEphemeral(s, i, "Verification failed. Contact an administrator.")
		return
	}

	respondEphemeral(s, i, "You are now verified. Welcome!")
}

// handleDecoyButton answers the fake verification buttons
func (b *Bot) handleDecoyButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respondEphemeral(s, i, "Nice try. The real button is the green one.")
}
