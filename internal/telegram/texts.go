package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

const (
	startText = "👋 I keep track of your work hours.\n\n" +
		"Tell me when your day starts and ends in whatever way you like: " +
		"9am, 930pm, 14:00, 9 p.m. or just 9.\n\n" +
		"Use /hours to pick a preset or /help for all commands."
	helpText = "Commands:\n" +
		"/status — show your hours\n" +
		"/hours 9am-5pm — set both ends at once\n" +
		"/from 9am — set the start\n" +
		"/to 5:30pm — set the end\n" +
		"/clear — empty both fields\n\n" +
		"Times without am/pm are read as morning below 12 (9 → 9:00am) " +
		"and as 24-hour clock from 12 up (17 → 5:00pm). " +
		"The end must be later than the start on the same day."
	statusTitle = "🕘 Work hours: %s → %s"
	emptyField  = "—"
	formatHint  = "Examples: 9am, 930pm, 14:00, 9 p.m."
)

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/status"),
			tgbotapi.NewKeyboardButton("/hours"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/clear"),
			tgbotapi.NewKeyboardButton("/help"),
		),
	)
}

func settingsInlineKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🕘 Change hours", "set_hours"),
		),
	)
}

func hoursPresetsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("9am–5pm", "range:9am-5pm"),
			tgbotapi.NewInlineKeyboardButtonData("8am–4pm", "range:8am-4pm"),
			tgbotapi.NewInlineKeyboardButtonData("10am–6pm", "range:10am-6pm"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("▶️ Set start", "field:from"),
			tgbotapi.NewInlineKeyboardButtonData("⏹ Set end", "field:to"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✍️ Custom…", "range:custom"),
		),
	)
}
