package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/eldorado/internal/config"
	"github.com/fadedpez/eldorado/internal/logging"
	"github.com/fadedpez/eldorado/pkg/catalog"
	"github.com/fadedpez/eldorado/pkg/services/economy"
)

// Bot is the Discord front end for the economy engine. It owns no economy
// state; every command resolves to a call into the economy service.
type Bot struct {
	config   *config.Config
	session  *discordgo.Session
	economy  *economy.Service
	catalog  *catalog.Catalog
	logger   *logging.Logger
	commands []*discordgo.ApplicationCommand
}

// New creates a new instance of Bot
func New(cfg *config.Config, svc *economy.Service, cat *catalog.Catalog, logger *logging.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	if logger == nil {
		logger = logging.Default
	}

	bot := &Bot{
		config:   cfg,
		session:  session,
		economy:  svc,
		catalog:  cat,
		logger:   logger,
		commands: make([]*discordgo.ApplicationCommand, 0),
	}

	session.AddHandler(bot.handleInteractionCreate)

	return bot, nil
}

// Start opens the Discord connection and registers commands
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if err := b.registerCommands(); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	return nil
}

// Stop gracefully shuts down the bot
func (b *Bot) Stop() error {
	if b.config.IsDevelopment() {
		b.cleanupCommands()
	}

	return b.session.Close()
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	for _, cmd := range Commands {
		registered, err := b.session.ApplicationCommandCreate(b.config.AppID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
		b.commands = append(b.commands, registered)
	}

	b.logger.Info("Registered %d slash commands", len(b.commands))
	return nil
}

// cleanupCommands removes registered commands on shutdown
func (b *Bot) cleanupCommands() {
	for _, cmd := range b.commands {
		if err := b.session.ApplicationCommandDelete(b.config.AppID, b.config.GuildID, cmd.ID); err != nil {
			b.logger.Warn("Failed to delete command %s: %v", cmd.Name, err)
		}
	}
}

// handleInteractionCreate handles Discord interaction events
func (b *Bot) handleInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	b.handleSlashCommand(s, i)
}
