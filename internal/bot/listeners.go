package bot

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

var invitePattern = regexp.MustCompile(`(https?://)?(www\.)?discord(\.gg|\.com/invite)/[A-Za-z0-9-]+`)

const welcomeAllCommand = "!welcomeall"

// handleMessageCreate routes inbound guild messages: relay completion,
// the legacy welcomeall command and the invite-link filter
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	if b.deliverRelay(s, m) {
		return
	}

	if strings.TrimSpace(m.Content) == welcomeAllCommand {
		b.handleWelcomeAll(s, m)
		return
	}

	b.filterInviteLinks(s, m)
}

// filterInviteLinks deletes external Discord invite links posted by
// non-admin members
func (b *Bot) filterInviteLinks(s *discordgo.Session, m *discordgo.MessageCreate) {
	if b.messageAuthorIsAdmin(s, m) {
		return
	}
	if b.config.InviteAllowedChannelID != "" && m.ChannelID == b.config.InviteAllowedChannelID {
		return
	}
	if !invitePattern.MatchString(m.Content) {
		return
	}

	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		slog.Error("Failed to delete invite link message", "messageID", m.ID, "error", err)
		return
	}

	slog.Info("Deleted an external Discord invite link", "author", m.Author.Username, "channelID", m.ChannelID)
	b.sendTransientNotice(s, m.ChannelID, fmt.Sprintf("%s, external Discord invites are not allowed here.", m.Author.Mention()), 2*time.Second)
}

// handleMemberJoin records the member and posts the welcome message
func (b *Bot) handleMemberJoin(s *discordgo.Session, e *discordgo.GuildMemberAdd) {
	b.welcomeMember(s, e.Member.User)
}

// welcomeMember upserts the member record and greets the member in the
// welcome channel
func (b *Bot) welcomeMember(s *discordgo.Session, user *discordgo.User) {
	joinedAt := time.Now().Format("2006-01-02 15:04:05")
	if err := b.repo.UpsertMember(user.ID, user.Username, joinedAt); err != nil {
		slog.Error("Failed to record member", "userID", user.ID, "error", err)
	}

	_, err := s.ChannelMessageSend(b.config.WelcomeChannelID, fmt.Sprintf("Welcome to the server, %s! 👋", user.Mention()))
	if err != nil {
		slog.Error("Failed to send welcome message", "userID", user.ID, "error", err)
	}
}

// handleWelcomeAll welcomes every non-bot member of the guild (legacy
// prefix command, admin only)
func (b *Bot) handleWelcomeAll(s *discordgo.Session, m *discordgo.MessageCreate) {
	if !b.messageAuthorIsAdmin(s, m) {
		return
	}

	after := ""
	for {
		members, err := s.GuildMembers(m.GuildID, after, 1000)
		if err != nil {
			slog.Error("Failed to list guild members", "error", err)
			return
		}
		if len(members) == 0 {
			break
		}

		for _, member := range members {
			if member.User == nil || member.User.Bot {
				continue
			}
			b.welcomeMember(s, member.User)
		}

		after = members[len(members)-1].User.ID
		if len(members) < 1000 {
			break
		}
	}

	if _, err := s.ChannelMessageSend(m.ChannelID, "Welcome messages sent to all members."); err != nil {
		slog.Error("Failed to confirm welcomeall", "error", err)
	}
}

// messageAuthorIsAdmin resolves the author's channel permissions and
// checks for Administrator
func (b *Bot) messageAuthorIsAdmin(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	permissions, err := s.State.MessagePermissions(m.Message)
	if err != nil {
		permissions, err = s.UserChannelPermissions(m.Author.ID, m.ChannelID)
		if err != nil {
			slog.Debug("Could not resolve author permissions", "userID", m.Author.ID, "error", err)
			return false
		}
	}
	return permissions&discordgo.PermissionAdministrator != 0
}
