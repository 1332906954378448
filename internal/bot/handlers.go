package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/eldorado/pkg/entities"
)

// handleSlashCommand dispatches all slash commands
func (b *Bot) handleSlashCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID := interactionUserID(i)
	if userID == "" {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "balance":
		b.handleBalance(ctx, s, i, userID)
	case "daily":
		b.handleDaily(ctx, s, i, userID)
	case "shop":
		b.handleShop(s, i)
	case "buy":
		b.handleBuy(ctx, s, i, userID)
	case "use":
		b.handleUse(ctx, s, i, userID)
	case "unequip":
		b.handleUnequip(ctx, s, i, userID)
	case "stash":
		b.handleStash(ctx, s, i, userID)
	case "powerups":
		b.handlePowerups(ctx, s, i, userID)
	case "history":
		b.handleHistory(ctx, s, i, userID)
	default:
		b.logger.Warn("Unknown command: %s", i.ApplicationCommandData().Name)
	}
}

func (b *Bot) handleBalance(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string) {
	balance, err := b.economy.Balance(ctx, userID)
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	b.respond(s, i, fmt.Sprintf("You have **%d** coins and **%d** gems.", balance.Coins, balance.Gems))
}

func (b *Bot) handleDaily(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string) {
	claim, err := b.economy.ClaimDailyBonus(ctx, userID)
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	b.respond(s, i, fmt.Sprintf("Daily bonus claimed: **%d** coins! Streak: %d days.", claim.Amount, claim.Streak))
}

func (b *Bot) handleShop(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var sb strings.Builder
	sb.WriteString("**Shop**\n")
	for _, t := range entities.ItemTypes {
		items := b.catalog.ItemsByType(t)
		if len(items) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("__%ss__\n", t))
		for _, item := range items {
			if item.PriceCurrency() == entities.CurrencyCoins {
				sb.WriteString(fmt.Sprintf("`%s` %s (%s) — %d coins\n", item.ID, item.Name, item.Rarity, item.Price))
			}
		}
	}

	b.respond(s, i, sb.String())
}

func (b *Bot) handleBuy(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string) {
	itemID := stringOption(i, "item")

	owned, balance, err := b.economy.Purchase(ctx, userID, itemID)
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	b.respond(s, i, fmt.Sprintf("You bought **%s** for %d coins. New balance: %d coins.",
		owned.Item.Name, owned.Item.Price, balance.Coins))
}

func (b *Bot) handleUse(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string) {
	itemID := stringOption(i, "item")

	if err := b.economy.Activate(ctx, userID, itemID); err != nil {
		b.respondError(s, i, err)
		return
	}

	b.respond(s, i, fmt.Sprintf("Activated `%s`.", itemID))
}

func (b *Bot) handleUnequip(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string) {
	target := stringOption(i, "slot")

	// A slot name clears the singleton slot; anything else is treated as a
	// powerup item id.
	switch t := entities.ItemType(target); t {
	case entities.ItemTypeTheme, entities.ItemTypeAvatar, entities.ItemTypeEffect:
		if err := b.economy.DeactivateSlot(ctx, userID, t); err != nil {
			b.respondError(s, i, err)
			return
		}
		b.respond(s, i, fmt.Sprintf("Cleared your %s slot.", t))
	default:
		if err := b.economy.DeactivatePowerup(ctx, userID, target); err != nil {
			b.respondError(s, i, err)
			return
		}
		b.respond(s, i, fmt.Sprintf("Deactivated `%s`.", target))
	}
}

func (b *Bot) handleStash(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string) {
	items, err := b.economy.OwnedItems(ctx, userID, "")
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	if len(items) == 0 {
		b.respond(s, i, "You don't own any items yet. Try `/shop`.")
		return
	}

	var sb strings.Builder
	sb.WriteString("**Your items**\n")
	for _, owned := range items {
		sb.WriteString(fmt.Sprintf("`%s` %s (%s %s)\n", owned.Item.ID, owned.Item.Name, owned.Item.Rarity, owned.Item.Type))
	}

	b.respond(s, i, sb.String())
}

func (b *Bot) handlePowerups(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string) {
	active, err := b.economy.ActivePowerups(ctx, userID)
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	if len(active) == 0 {
		b.respond(s, i, "No active powerups.")
		return
	}

	var sb strings.Builder
	sb.WriteString("**Active powerups**\n")
	for _, p := range active {
		sb.WriteString(fmt.Sprintf("%s — %s left\n", p.Item.Name, formatRemaining(p.Remaining)))
	}

	b.respond(s, i, sb.String())
}

func (b *Bot) handleHistory(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, userID string) {
	txs, err := b.economy.History(ctx, userID, 10)
	if err != nil {
		b.respondError(s, i, err)
		return
	}

	if len(txs) == 0 {
		b.respond(s, i, "No transactions yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString("**Recent transactions**\n")
	for _, tx := range txs {
		sb.WriteString(fmt.Sprintf("%s: %+d coins, %+d gems — %s\n",
			tx.Timestamp.Format("Jan 2 15:04"), tx.CoinDelta, tx.GemDelta, tx.Reason))
	}

	b.respond(s, i, sb.String())
}

// interactionUserID extracts the invoking user's id from either a guild or
// DM interaction.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// stringOption returns the named string option of a slash command.
func stringOption(i *discordgo.InteractionCreate, name string) string {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

func formatRemaining(d time.Duration) string {
	d = d.Round(time.Minute)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
