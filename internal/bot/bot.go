package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/wrrulosdev/veryx-bot/internal/config"
	"github.com/wrrulosdev/veryx-bot/internal/giveaway"
	"github.com/wrrulosdev/veryx-bot/internal/mcstatus"
	"github.com/wrrulosdev/veryx-bot/internal/storage"
)

// Bot represents the Discord bot instance
type Bot struct {
	config     *config.Config
	session    *discordgo.Session
	repo       *storage.Repository
	giveaways  *giveaway.Registry
	scheduler  *giveaway.Scheduler
	status     *mcstatus.Client
	components *componentRegistry
	relays     *relayRegistry
	commands   []*discordgo.ApplicationCommand
}

// New creates a new Bot instance
func New(cfg *config.Config) (*Bot, error) {
	// Create Discord session
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	// Set intents
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentMessageContent

	// Initialize storage
	repo, err := storage.NewRepository(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	b := &Bot{
		config:     cfg,
		session:    session,
		repo:       repo,
		giveaways:  giveaway.NewRegistry(),
		status:     mcstatus.NewClient(),
		components: newComponentRegistry(),
		relays:     newRelayRegistry(),
	}
	b.scheduler = giveaway.NewScheduler(b.giveaways, cfg.GiveawayScanSeconds, b.settleGiveaway)

	// Register component and event handlers
	b.registerComponents()
	b.registerHandlers()

	return b, nil
}

// Start opens the Discord connection and starts background tasks
func (b *Bot) Start(ctx context.Context) error {
	// Open Discord connection
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	slog.Info("Connected to Discord", "user", b.session.State.User.Username)

	// Register slash commands
	if err := b.registerCommands(); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	// Start the giveaway expiry scan
	go b.scheduler.Start(ctx)

	return nil
}

// Stop gracefully shuts down the bot
func (b *Bot) Stop() error {
	// Stop the giveaway scheduler
	if b.scheduler != nil {
		b.scheduler.Stop()
	}

	// Remove registered commands (optional - comment out to keep commands)
	// b.removeCommands()

	// Close storage
	if b.repo != nil {
		b.repo.Close()
	}

	// Close Discord session
	if b.session != nil {
		return b.session.Close()
	}

	return nil
}

// registerComponents wires component custom ids to their handlers
func (b *Bot) registerComponents() {
	b.components.Register(componentTicketDropdown, b.handleTicketSelect)
	b.components.Register(componentCloseTicket, b.handleCloseTicket)
	b.components.Register(componentVerifyButton, b.handleVerifyButton)
	b.components.Register(componentRedButtonLeft, b.handleDecoyButton)
	b.components.Register(componentRedButtonRight, b.handleDecoyButton)
}

// registerHandlers sets up Discord event handlers
func (b *Bot) registerHandlers() {
	b.session.AddHandler(b.handleInteraction)
	b.session.AddHandler(b.handleReactionAdd)
	b.session.AddHandler(b.handleMessageCreate)
	b.session.AddHandler(b.handleMemberJoin)
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		slog.Info("Bot is ready", "guilds", len(r.Guilds))
		b.reattachPanels(s)
	})
}

// handleInteraction routes slash commands and component clicks
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		slog.Debug("Received command", "command", data.Name, "guild", i.GuildID)

		switch data.Name {
		case "giveaway":
			b.handleGiveaway(s, i)
		case "send_message":
			b.handleSendMessage(s, i)
		case "server":
			b.handleServer(s, i)
		case "send_ticket":
			b.handleSendTicket(s, i)
		case "send_verification":
			b.handleSendVerification(s, i)
		default:
			slog.Warn("Unknown command", "command", data.Name)
		}

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		handler, ok := b.components.Get(customID)
		if !ok {
			slog.Warn("Unknown component", "customID", customID)
			return
		}
		handler(s, i)
	}
}

// reattachPanels restores interactive behavior on the persisted panel
// messages after a restart
func (b *Bot) reattachPanels(s *discordgo.Session) {
	b.reattachPanel(s, "ticket", slotTicketChannel, slotTicketMessage, ticketPanelComponents())
	b.reattachPanel(s, "verification", slotVerificationChannel, slotVerificationMessage, verificationComponents())
}

// reattachPanel looks up a panel's persisted channel and message ids and
// re-binds a fresh component view to the message. Any failure abandons
// the panel: both records are deleted and the condition logged.
func (b *Bot) reattachPanel(s *discordgo.Session, label, channelSlot, messageSlot string, components []discordgo.MessageComponent) {
	channelRec, err := b.repo.IdentifierByName(channelSlot)
	if err != nil {
		slog.Error("Failed to look up panel channel", "panel", label, "error", err)
		return
	}
	messageRec, err := b.repo.IdentifierByName(messageSlot)
	if err != nil {
		slog.Error("Failed to look up panel message", "panel", label, "error", err)
		return
	}
	if channelRec == nil || messageRec == nil {
		slog.Debug("No persisted panel", "panel", label)
		return
	}

	abandon := func(reason string, err error) {
		slog.Warn("Abandoning panel", "panel", label, "reason", reason, "error", err)
		if err := b.repo.RemoveIdentifier(channelSlot); err != nil {
			slog.Error("Failed to clear panel channel record", "panel", label, "error", err)
		}
		if err := b.repo.RemoveIdentifier(messageSlot); err != nil {
			slog.Error("Failed to clear panel message record", "panel", label, "error", err)
		}
	}

	if _, err := s.Channel(channelRec.ObjectID); err != nil {
		abandon("channel no longer exists", err)
		return
	}

	if err := b.refreshPanelView(s, channelRec.ObjectID, messageRec.ObjectID, components); err != nil {
		abandon("message could not be rebound", err)
		return
	}

	slog.Info("Reattached panel", "panel", label, "messageID", messageRec.ObjectID)
}

// refreshPanelView rebinds a freshly constructed component view to an
// existing panel message
func (b *Bot) refreshPanelView(s *discordgo.Session, channelID, messageID string, components []discordgo.MessageComponent) error {
	_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Components: &components,
	})
	return err
}
