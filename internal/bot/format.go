package bot

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"funfact_bot/internal/model"
)

// User-facing texts.
const (
	msgChooseKind  = "Now choose if you want a *fun fact* or *quiz*! 🎉"
	msgMainMenu    = "↩️ Back to main menu."
	msgUnknown     = "🤔 I didn't get that. Please use the menu buttons below."
	msgSubscribed  = "✅ You’re subscribed! You’ll get a fun fact every day 📅"
	msgAlreadySub  = "🔔 You’re already subscribed!"
	msgFactFailed  = "⚠️ Oops! Something went wrong. Try again later."
	msgQuizFailed  = "⚠️ Couldn't load quiz, try again!"
	msgAnotherFact = "🔁 Another fact"

	ackCorrect = "✅ Correct! You're awesome!"
	ackWrong   = "❌ Oops! Try again next time."
)

// FormatFact renders a fact as a Markdown message. The topic is escaped;
// the fact text is passed through so the model's own emphasis survives.
func FormatFact(f model.Fact) string {
	topic := tgbotapi.EscapeText(tgbotapi.ModeMarkdown, capitalize(f.Topic))
	return fmt.Sprintf("🌍 *Category:* %s\n\n%s", topic, f.Text)
}

// FactKeyboard is the inline keyboard attached to every fact.
func FactKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(msgAnotherFact, string(model.TagNewFact)),
		),
	)
}

// FormatQuiz renders the quiz question as a Markdown message.
func FormatQuiz(q model.Quiz) string {
	return "🧩 *Quiz time!*\n\n" + q.Question
}

// QuizKeyboard builds one inline button row per option. Each button carries
// only the option's correctness tag.
func QuizKeyboard(q model.Quiz) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options))
	for _, o := range q.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(o.Text, string(model.AnswerTag(o))),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
