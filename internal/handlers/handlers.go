package handlers

import (
	"context"
	"log"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/mkraev/neurocontent-bot/internal/contextkeys"
	"github.com/mkraev/neurocontent-bot/internal/messages"
	"github.com/mkraev/neurocontent-bot/internal/session"
	"github.com/mkraev/neurocontent-bot/internal/tariffs"
	"github.com/mkraev/neurocontent-bot/types"
)

type GenerationDispatcher interface {
	Dispatch(ctx context.Context, userID int64, contentType types.ContentType, fieldValue string) (string, error)
}

type Handlers struct {
	ledger     types.LedgerStore
	catalog    *tariffs.Catalog
	sessions   *session.Manager
	dispatcher GenerationDispatcher
	adminID    int64
}

func NewHandlers(ledger types.LedgerStore, catalog *tariffs.Catalog, sessions *session.Manager, dispatcher GenerationDispatcher, adminID int64) *Handlers {
	return &Handlers{
		ledger:     ledger,
		catalog:    catalog,
		sessions:   sessions,
		dispatcher: dispatcher,
		adminID:    adminID,
	}
}

func (bh *Handlers) MainHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID, _ := contextkeys.GetChatID(ctx)
	userID, ok := contextkeys.GetUserID(ctx)
	if !ok {
		log.Printf("Error: user id not found in context")
		return
	}
	messageType, _ := contextkeys.GetMessageType(ctx)

	switch messageType {
	case contextkeys.MessageTypeCommand:
		bh.HandleCommand(ctx, b, update, userID)
	case contextkeys.MessageTypeClickButton:
		bh.HandleClickButton(ctx, b, update, userID)
	case contextkeys.MessageTypeText:
		bh.HandleText(ctx, b, update, userID)
	default:
		if chatID != 0 {
			b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:    chatID,
				Text:      messages.ErrorDefault(),
				ParseMode: messages.ParseModeHTML,
			})
		}
	}
}

func (bh *Handlers) isAdmin(userID int64) bool {
	return bh.adminID != 0 && userID == bh.adminID
}

func (bh *Handlers) answerCallback(ctx context.Context, b *bot.Bot, callbackID, text string) error {
	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
	})
	return err
}
