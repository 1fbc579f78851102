package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/mkraev/neurocontent-bot/internal/messages"
)

func (bh *Handlers) HandleCommand(ctx context.Context, b *bot.Bot, update *models.Update, userID int64) {
	if update == nil || update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	fields := strings.Fields(update.Message.Text)
	if len(fields) == 0 {
		return
	}
	cmd := fields[0]
	if strings.Contains(cmd, "@") {
		cmd = strings.SplitN(cmd, "@", 2)[0]
	}

	switch cmd {
	case "/start":
		bh.sessions.Clear(userID)
		kb := mainKeyboard()
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        messages.Welcome(),
			ParseMode:   messages.ParseModeHTML,
			ReplyMarkup: &kb,
		})
	case "/admin":
		if !bh.isAdmin(userID) {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   messages.AccessDenied(),
			})
			return
		}
		kb := adminKeyboard()
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        messages.AdminPanel(),
			ReplyMarkup: &kb,
		})
	default:
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      messages.ErrorUnknownCommand(),
			ParseMode: messages.ParseModeHTML,
		})
	}
}
