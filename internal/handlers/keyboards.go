package handlers

import (
	"fmt"

	"github.com/go-telegram/bot/models"

	"github.com/mkraev/neurocontent-bot/internal/tariffs"
)

func mainKeyboard() models.InlineKeyboardMarkup {
	return models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "🛒 Описание товара", CallbackData: "type_product"}},
			{{Text: "🌐 Текст для сайта", CallbackData: "type_site"}},
			{{Text: "📣 Пост для соцсетей", CallbackData: "type_social"}},
			{{Text: "💳 Купить PRO", CallbackData: "buy_pro"}},
			{{Text: "📜 История", CallbackData: "history"}},
		},
	}
}

func tariffsKeyboard(catalog *tariffs.Catalog) models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, 4)
	for _, t := range catalog.All() {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: fmt.Sprintf("%s — %d ₽", t.Title, t.Price), CallbackData: "buy_" + t.Key},
		})
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "⬅️ Назад", CallbackData: "back_to_menu"},
	})
	return models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func adminKeyboard() models.InlineKeyboardMarkup {
	return models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "📊 Статистика", CallbackData: "admin_stats"}},
			{{Text: "💰 Доход", CallbackData: "admin_income"}},
			{{Text: "⬅️ В меню", CallbackData: "back_to_menu"}},
		},
	}
}

func confirmKeyboard() models.InlineKeyboardMarkup {
	return models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "✅ ДА", CallbackData: "confirm_yes"},
				{Text: "❌ НЕТ", CallbackData: "back_to_menu"},
			},
		},
	}
}
