package handlers

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/mkraev/neurocontent-bot/internal/contextkeys"
	"github.com/mkraev/neurocontent-bot/internal/dispatcher"
	"github.com/mkraev/neurocontent-bot/internal/messages"
	"github.com/mkraev/neurocontent-bot/internal/tariffs"
	"github.com/mkraev/neurocontent-bot/types"
)

func (bh *Handlers) HandleClickButton(ctx context.Context, b *bot.Bot, update *models.Update, userID int64) {
	if update == nil || update.CallbackQuery == nil {
		return
	}
	chatID, _ := contextkeys.GetChatID(ctx)
	if chatID == 0 {
		chatID = userID
	}

	data, _ := contextkeys.GetCallbackData(ctx)
	if data == "" {
		data = update.CallbackQuery.Data
	}
	data = strings.TrimSpace(data)

	_ = bh.answerCallback(ctx, b, update.CallbackQuery.ID, "")

	switch {
	case strings.HasPrefix(data, "type_"):
		bh.handleTypeSelected(ctx, b, chatID, userID, strings.TrimPrefix(data, "type_"))
	case data == "buy_pro":
		// Opens the tariff menu; checked before the generic buy_ prefix,
		// same precedence as the purchase buttons it shadows.
		kb := tariffsKeyboard(bh.catalog)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        messages.ChooseTariff(),
			ReplyMarkup: &kb,
		})
	case strings.HasPrefix(data, "buy_"):
		bh.handleBuyTariff(ctx, b, chatID, userID, strings.TrimPrefix(data, "buy_"))
	case data == "confirm_yes":
		bh.handleConfirm(ctx, b, chatID, userID)
	case data == "history":
		bh.handleHistory(ctx, b, chatID, userID)
	case data == "admin_stats":
		bh.handleAdminStats(ctx, b, chatID, userID)
	case data == "admin_income":
		bh.handleAdminIncome(ctx, b, chatID, userID)
	case data == "back_to_menu":
		bh.sessions.Clear(userID)
		kb := mainKeyboard()
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        messages.MainMenu(),
			ReplyMarkup: &kb,
		})
	}
}

func (bh *Handlers) handleTypeSelected(ctx context.Context, b *bot.Bot, chatID, userID int64, raw string) {
	contentType := types.ContentType(raw)
	switch contentType {
	case types.ContentProduct, types.ContentSite, types.ContentSocial:
	default:
		return
	}
	bh.sessions.StartFlow(userID, contentType)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   messages.EnterName(),
	})
}

func (bh *Handlers) handleBuyTariff(ctx context.Context, b *bot.Bot, chatID, userID int64, key string) {
	tariff, err := bh.catalog.Get(key)
	if err != nil {
		if !errors.Is(err, tariffs.ErrUnknownTariff) {
			log.Printf("Error resolving tariff %q: %v", key, err)
		}
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      messages.ErrorDefault(),
			ParseMode: messages.ParseModeHTML,
		})
		return
	}
	if err := bh.ledger.ApplyTariff(userID, tariff); err != nil {
		log.Printf("Error applying tariff %q to user %d: %v", key, userID, err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      messages.ErrorDefault(),
			ParseMode: messages.ParseModeHTML,
		})
		return
	}
	kb := mainKeyboard()
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        messages.TariffActivated(tariff),
		ParseMode:   messages.ParseModeHTML,
		ReplyMarkup: &kb,
	})
}

func (bh *Handlers) handleConfirm(ctx context.Context, b *bot.Bot, chatID, userID int64) {
	contentType, fieldValue, ok := bh.sessions.TakeConfirmed(userID)
	if !ok {
		// Stale or double-tapped button: the session is already idle.
		return
	}

	result, err := bh.dispatcher.Dispatch(ctx, userID, contentType, fieldValue)
	if err != nil {
		text := messages.ErrorDefault()
		if errors.Is(err, dispatcher.ErrLimitReached) {
			text = messages.LimitReached()
		} else {
			log.Printf("Error dispatching generation for user %d: %v", userID, err)
		}
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      text,
			ParseMode: messages.ParseModeHTML,
		})
		return
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   result,
	})
	kb := mainKeyboard()
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        messages.Done(),
		ReplyMarkup: &kb,
	})
}

func (bh *Handlers) handleHistory(ctx context.Context, b *bot.Bot, chatID, userID int64) {
	entries, err := bh.ledger.RecentHistory(userID, 5)
	if err != nil {
		log.Printf("Error reading history for user %d: %v", userID, err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      messages.ErrorDefault(),
			ParseMode: messages.ParseModeHTML,
		})
		return
	}
	if len(entries) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   messages.HistoryEmpty(),
		})
		return
	}
	lines := []string{messages.HistoryHeader()}
	for i, e := range entries {
		lines = append(lines, messages.HistoryItem(i+1, e.Content))
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      strings.Join(lines, "\n\n"),
		ParseMode: messages.ParseModeHTML,
	})
}

func (bh *Handlers) handleAdminStats(ctx context.Context, b *bot.Bot, chatID, userID int64) {
	if !bh.isAdmin(userID) {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   messages.AccessDenied(),
		})
		return
	}
	users, err := bh.ledger.CountUsers()
	if err != nil {
		log.Printf("Error counting users: %v", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      messages.ErrorDefault(),
			ParseMode: messages.ParseModeHTML,
		})
		return
	}
	generations, err := bh.ledger.CountGenerations()
	if err != nil {
		log.Printf("Error counting generations: %v", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      messages.ErrorDefault(),
			ParseMode: messages.ParseModeHTML,
		})
		return
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   messages.AdminStats(users, generations),
	})
}

func (bh *Handlers) handleAdminIncome(ctx context.Context, b *bot.Bot, chatID, userID int64) {
	if !bh.isAdmin(userID) {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   messages.AccessDenied(),
		})
		return
	}
	total, err := bh.ledger.SumPayments()
	if err != nil {
		log.Printf("Error summing payments: %v", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      messages.ErrorDefault(),
			ParseMode: messages.ParseModeHTML,
		})
		return
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   messages.AdminIncome(total),
	})
}
