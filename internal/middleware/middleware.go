package middleware

import (
	"context"
	"log"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/mkraev/neurocontent-bot/internal/contextkeys"
	"github.com/mkraev/neurocontent-bot/internal/messages"
	"github.com/mkraev/neurocontent-bot/types"
)

type Middlewares struct {
	ledger types.LedgerStore
}

func NewMiddlewares(ledger types.LedgerStore) *Middlewares {
	return &Middlewares{ledger: ledger}
}

// ResolveUserMiddleware extracts the user and chat ids from the update,
// lazily creates the account row and annotates the context. A storage
// failure aborts this interaction only: the user gets the generic error and
// the process keeps serving other updates.
func (m *Middlewares) ResolveUserMiddleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		var (
			userID int64
			chatID int64
		)

		switch {
		case update.Message != nil && update.Message.From != nil:
			userID = update.Message.From.ID
			chatID = update.Message.Chat.ID
		case update.CallbackQuery != nil:
			userID = update.CallbackQuery.From.ID
			chatID = getChatIDFromMaybeInaccessibleMessage(update.CallbackQuery.Message)
		default:
			return
		}

		if userID == 0 || chatID == 0 {
			return
		}

		if _, err := m.ledger.EnsureUser(userID); err != nil {
			log.Printf("Error ensuring account for user %d: %v", userID, err)
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:    chatID,
				Text:      messages.ErrorDefault(),
				ParseMode: messages.ParseModeHTML,
			})
			return
		}

		ctx = contextkeys.WithUserID(ctx, userID)
		ctx = contextkeys.WithChatID(ctx, chatID)
		next(ctx, b, update)
	}
}

func getChatIDFromMaybeInaccessibleMessage(m models.MaybeInaccessibleMessage) int64 {
	if m.Message != nil {
		return m.Message.Chat.ID
	}
	if m.InaccessibleMessage != nil {
		return m.InaccessibleMessage.Chat.ID
	}
	return 0
}

// ClassifyMiddleware tags the context with the kind of incoming event so the
// main handler can switch on it.
func (m *Middlewares) ClassifyMiddleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		switch {
		case update.CallbackQuery != nil && update.CallbackQuery.Data != "":
			ctx = contextkeys.WithMessageType(ctx, contextkeys.MessageTypeClickButton)
			ctx = contextkeys.WithCallbackData(ctx, update.CallbackQuery.Data)
		case update.Message != nil && strings.HasPrefix(update.Message.Text, "/"):
			ctx = contextkeys.WithMessageType(ctx, contextkeys.MessageTypeCommand)
		case update.Message != nil && update.Message.Text != "":
			ctx = contextkeys.WithMessageType(ctx, contextkeys.MessageTypeText)
		default:
			ctx = contextkeys.WithMessageType(ctx, contextkeys.MessageTypeUnknown)
		}
		next(ctx, b, update)
	}
}
