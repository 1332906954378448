package bot

import (
	"github.com/bwmarrin/discordgo"
)

// Commands defines all slash commands for the bot
var Commands = []*discordgo.ApplicationCommand{
	{
		Name:        "balance",
		Description: "Show your coin and gem balance",
	},
	{
		Name:        "daily",
		Description: "Claim your daily bonus",
	},
	{
		Name:        "shop",
		Description: "Browse the item catalog",
	},
	{
		Name:        "buy",
		Description: "Buy an item from the shop",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "item",
				Description: "Item id to buy",
				Required:    true,
			},
		},
	},
	{
		Name:        "use",
		Description: "Activate an item you own",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "item",
				Description: "Item id to activate",
				Required:    true,
			},
		},
	},
	{
		Name:        "unequip",
		Description: "Deactivate a slot or powerup",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "slot",
				Description: "theme, avatar, effect, or a powerup item id",
				Required:    true,
			},
		},
	},
	{
		Name:        "stash",
		Description: "Show the items you own",
	},
	{
		Name:        "powerups",
		Description: "Show your active powerups and their remaining time",
	},
	{
		Name:        "history",
		Description: "Show your recent transactions",
	},
}
