package bot

import (
	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/eldorado/internal/types"
)

// userMessages maps economy error codes to user-facing text. Codes outside
// this map are internal failures and get a generic message.
var userMessages = map[types.ErrorCode]string{
	types.ErrInsufficientFunds: "You can't afford that.",
	types.ErrAlreadyOwned:      "You already own that item.",
	types.ErrItemNotFound:      "That item isn't in the shop.",
	types.ErrNotOwned:          "You don't own that item. Buy it first with `/buy`.",
	types.ErrAlreadyClaimed:    "You already claimed your daily bonus today. Come back tomorrow!",
	types.ErrPaymentRequired:   "That item can't be bought with coins.",
	types.ErrPaymentDeclined:   "Your payment wasn't authorized.",
}

// respond sends a normal interaction response
func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
	if err != nil {
		b.logger.Error("Error sending response: %v", err)
	}
}

// respondError sends an ephemeral error message to the user
func (b *Bot) respondError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	message := "Something went wrong. Try again in a moment."

	var econErr *types.EconomyError
	if types.As(err, &econErr) {
		if msg, ok := userMessages[econErr.Code]; ok {
			message = msg
		}
	}
	b.logger.LogError(err)

	respErr := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if respErr != nil {
		b.logger.Error("Error sending error response: %v", respErr)
	}
}
