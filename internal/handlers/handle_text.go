package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/mkraev/neurocontent-bot/internal/messages"
)

// HandleText consumes free text only while the user is in the
// field-collection step; otherwise the message is ignored.
func (bh *Handlers) HandleText(ctx context.Context, b *bot.Bot, update *models.Update, userID int64) {
	if update == nil || update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)
	if text == "" {
		return
	}

	if !bh.sessions.SetField(userID, text) {
		return
	}

	kb := confirmKeyboard()
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        messages.ConfirmGeneration(text),
		ParseMode:   messages.ParseModeHTML,
		ReplyMarkup: &kb,
	})
}
