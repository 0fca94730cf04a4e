package bot

import (
	"cmp"
	"slices"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"funfact_bot/internal/config"
)

// Command is a user action recognized by the bot.
type Command int

// Recognized commands.
const (
	CommandUnknown Command = iota
	CommandStart
	CommandInfo
	CommandFeedback
	CommandFactOrQuiz
	CommandFact
	CommandQuiz
	CommandSubscribe
	CommandMainMenu
)

// Label is the display text of a menu button together with the prefix
// that routes incoming text to its command.
type Label struct {
	Text   string
	Prefix string
}

// Layout is one menu variant: its button labels, the 2x2 main keyboard and
// the texts that differ between variants.
type Layout struct {
	Labels   map[Command]Label
	Main     [4]Command
	Welcome  string
	Info     string
	Feedback string // %s is replaced with the feedback URL
}

// Layouts holds the built-in menu variants keyed by config name.
var Layouts = map[string]Layout{
	config.LayoutClassic: {
		Labels: map[Command]Label{
			CommandFact:      {Text: "Fun quiz 🎉", Prefix: "Fun quiz"},
			CommandInfo:      {Text: "Information ℹ️", Prefix: "Information"},
			CommandFeedback:  {Text: "Leave feedback❓", Prefix: "Leave feedback"},
			CommandSubscribe: {Text: "Subscribe for daily fact 📅", Prefix: "Subscribe for daily fact"},
		},
		Main:     [4]Command{CommandFact, CommandInfo, CommandFeedback, CommandSubscribe},
		Welcome:  "👋 Hello! I'm your *Fun AI Bot*.\n\nYou can get fun facts, info, or even subscribe for daily ones!",
		Info:     "ℹ️ This bot sends you daily fun quizzes and facts!\nYou can also request one anytime.",
		Feedback: "We’d love your feedback! 💬\nVisit: %s",
	},
	config.LayoutExtended: {
		Labels: map[Command]Label{
			CommandFactOrQuiz: {Text: "Fun Fact or Quiz 🎉", Prefix: "Fun Fact or Quiz"},
			CommandFact:       {Text: "Fun Fact 🎉🤓", Prefix: "Fun Fact"},
			CommandQuiz:       {Text: "Fun Quiz 🎉❓", Prefix: "Fun Quiz"},
			CommandInfo:       {Text: "Information ℹ️", Prefix: "Information"},
			CommandFeedback:   {Text: "Leave feedback❓", Prefix: "Leave feedback"},
			CommandSubscribe:  {Text: "Subscribe for daily fact 📅", Prefix: "Subscribe for daily fact"},
			CommandMainMenu:   {Text: "Return to main keyboard ℹ️", Prefix: "Return"},
		},
		Main:     [4]Command{CommandFactOrQuiz, CommandInfo, CommandFeedback, CommandSubscribe},
		Welcome:  "👋 Hello! I'm your *Fun AI Bot*.\n\nYou can get fun facts or take quizzes for fun learning!",
		Info:     "ℹ️ This bot sends you fun quizzes and facts!\nYou can also subscribe for daily ones.",
		Feedback: "💬 We’d love your feedback!\nVisit: %s",
	},
}

var slashCommands = map[string]Command{
	"start":     CommandStart,
	"help":      CommandInfo,
	"info":      CommandInfo,
	"feedback":  CommandFeedback,
	"fact":      CommandFact,
	"quiz":      CommandQuiz,
	"subscribe": CommandSubscribe,
	"menu":      CommandMainMenu,
}

// Menu maps the labels of one layout to commands and builds its reply
// keyboards. Only labels of the layout route; slash commands always do.
type Menu struct {
	layout Layout
	byLen  []Command
}

// NewMenu creates a Menu for the given layout.
func NewMenu(layout Layout) *Menu {
	m := &Menu{layout: layout}
	labels := layout.Labels
	for c, l := range labels {
		if l.Prefix != "" {
			m.byLen = append(m.byLen, c)
		}
	}
	// Longest prefix wins so "Fun Fact or Quiz" is not taken for "Fun Fact".
	slices.SortFunc(m.byLen, func(a, b Command) int {
		if n := cmp.Compare(len(labels[b].Prefix), len(labels[a].Prefix)); n != 0 {
			return n
		}
		return cmp.Compare(a, b)
	})
	return m
}

// Route resolves incoming message text to a command.
func (m *Menu) Route(text string) Command {
	text = strings.TrimSpace(text)
	if text == "" {
		return CommandUnknown
	}

	if name, ok := strings.CutPrefix(text, "/"); ok {
		name, _, _ = strings.Cut(name, " ")
		name, _, _ = strings.Cut(name, "@")
		if c, ok := slashCommands[strings.ToLower(name)]; ok {
			return c
		}
		return CommandUnknown
	}

	lower := strings.ToLower(text)
	for _, c := range m.byLen {
		if strings.HasPrefix(lower, strings.ToLower(m.layout.Labels[c].Prefix)) {
			return c
		}
	}
	return CommandUnknown
}

// MainKeyboard returns the top-level reply keyboard.
func (m *Menu) MainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	k := m.layout.Main
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(m.button(k[0]), m.button(k[1])),
		tgbotapi.NewKeyboardButtonRow(m.button(k[2]), m.button(k[3])),
	)
}

// ContentKeyboard returns the fact-or-quiz sub keyboard.
func (m *Menu) ContentKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(m.button(CommandFact), m.button(CommandQuiz)),
		tgbotapi.NewKeyboardButtonRow(m.button(CommandMainMenu)),
	)
}

func (m *Menu) button(c Command) tgbotapi.KeyboardButton {
	return tgbotapi.NewKeyboardButton(m.layout.Labels[c].Text)
}
