package messages

import (
	"fmt"
	"strings"

	"github.com/mkraev/neurocontent-bot/types"
)

const ParseModeHTML = "HTML"

func Escape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(strings.TrimSpace(s))
}

func Welcome() string {
	return "🤖 <b>NeuroContent AI</b>\nВыберите, какой текст сгенерировать:"
}

func MainMenu() string {
	return "Главное меню:"
}

func EnterName() string {
	return "Введите название:"
}

func ConfirmGeneration(name string) string {
	return fmt.Sprintf("Подтвердите генерацию:\n\n<b>%s</b>", Escape(name))
}

func Done() string {
	return "Готово ✅"
}

func LimitReached() string {
	return "❌ Лимит исчерпан.\nКупите тариф, чтобы продолжить."
}

func ErrorDefault() string {
	return "🚫 <b>Ошибка</b>\nПопробуйте ещё раз."
}

func ChooseTariff() string {
	return "Выберите тариф:"
}

func TariffActivated(t types.Tariff) string {
	return fmt.Sprintf("✅ Тариф %s активирован!\nЛимит запросов: %d", Escape(t.Title), t.Limit)
}

func Usage(used, limit int) string {
	return fmt.Sprintf("📈 Использовано: %d из %d", used, limit)
}

func AccessDenied() string {
	return "⛔ Доступ запрещён"
}

func AdminPanel() string {
	return "🛠 Админ-панель:"
}

func AdminStats(users, generations int64) string {
	return fmt.Sprintf("👥 Пользователей: %d\n🧠 Генераций: %d", users, generations)
}

func AdminIncome(total int64) string {
	return fmt.Sprintf("💰 Общий доход: %d ₽", total)
}

func HistoryEmpty() string {
	return "📜 История пуста."
}

func HistoryHeader() string {
	return "📜 <b>Последние генерации:</b>"
}

func HistoryItem(n int, content string) string {
	const maxPreview = 300
	content = strings.TrimSpace(content)
	if len([]rune(content)) > maxPreview {
		content = string([]rune(content)[:maxPreview]) + "…"
	}
	return fmt.Sprintf("%d. %s", n, Escape(content))
}

func ErrorUnknownCommand() string {
	return "❓ <b>Команда не найдена</b>"
}
