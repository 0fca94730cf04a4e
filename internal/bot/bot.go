package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"funfact_bot/internal/config"
	"funfact_bot/internal/model"
	"funfact_bot/internal/storage"
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Generator produces the content the bot delivers.
type Generator interface {
	GenerateFact(ctx context.Context, topics []string) (model.Fact, error)
	GenerateQuiz(ctx context.Context, topics []string) (model.Quiz, error)
}

type handlerFunc func(ctx context.Context, chatID int64)

type requestIDKey struct{}

// Bot is the Telegram bot that handles menu commands and delivers facts and quizzes.
type Bot struct {
	api        telegramAPI
	gen        Generator
	recipients storage.Recipients
	menu       *Menu
	cfg        *config.Config
	log        *slog.Logger
	routes     map[Command]handlerFunc
}

// New creates a Bot with the given Telegram token, generator, recipient store, and config.
func New(token string, gen Generator, recipients storage.Recipients, cfg *config.Config, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	return newBot(api, gen, recipients, cfg, log), nil
}

func newBot(api telegramAPI, gen Generator, recipients storage.Recipients, cfg *config.Config, log *slog.Logger) *Bot {
	layout, ok := Layouts[cfg.MenuLayout]
	if !ok {
		layout = Layouts[config.LayoutExtended]
	}
	b := &Bot{
		api:        api,
		gen:        gen,
		recipients: recipients,
		menu:       NewMenu(layout),
		cfg:        cfg,
		log:        log,
	}
	b.routes = map[Command]handlerFunc{
		CommandStart:      b.handleStart,
		CommandInfo:       b.handleInfo,
		CommandFeedback:   b.handleFeedback,
		CommandFactOrQuiz: b.handleFactOrQuiz,
		CommandFact:       b.handleFact,
		CommandQuiz:       b.handleQuiz,
		CommandSubscribe:  b.handleSubscribe,
		CommandMainMenu:   b.handleMainMenu,
	}
	return b
}

// Run starts the bot's long-polling loop, blocking until ctx is cancelled.
// Updates are handled one at a time in arrival order.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	ctx = context.WithValue(ctx, requestIDKey{}, uuid.NewString())

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.Text != "":
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	cmd := b.menu.Route(msg.Text)

	b.logger(ctx).Debug("message", "chat_id", chatID, "command", int(cmd), "text", msg.Text)

	h, ok := b.routes[cmd]
	if !ok {
		b.handleUnknown(ctx, chatID)
		return
	}
	h(ctx, chatID)
}

// DeliverFact generates a fact and sends it to chatID. A generation failure
// is replaced by the apology message; only send errors are returned.
// A fact Telegram rejects is also replaced by the apology, and the rejection
// is still returned.
func (b *Bot) DeliverFact(ctx context.Context, chatID int64) error {
	return b.sendFact(ctx, chatID)
}

func (b *Bot) sendFact(ctx context.Context, chatID int64) error {
	fact, err := b.gen.GenerateFact(ctx, b.cfg.FactTopics)
	if err != nil {
		b.logger(ctx).Error("generate fact", "chat_id", chatID, "error", err)
		return b.send(ctx, tgbotapi.NewMessage(chatID, msgFactFailed))
	}

	msg := tgbotapi.NewMessage(chatID, FormatFact(fact))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = FactKeyboard()
	return b.sendOrApologize(ctx, msg, msgFactFailed)
}

func (b *Bot) sendQuiz(ctx context.Context, chatID int64) error {
	quiz, err := b.gen.GenerateQuiz(ctx, b.cfg.QuizTopics)
	if err != nil {
		b.logger(ctx).Error("generate quiz", "chat_id", chatID, "error", err)
		return b.send(ctx, tgbotapi.NewMessage(chatID, msgQuizFailed))
	}

	b.logger(ctx).Debug("quiz generated", "chat_id", chatID, "topic", quiz.Topic, "options", len(quiz.Options))

	msg := tgbotapi.NewMessage(chatID, FormatQuiz(quiz))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if len(quiz.Options) > 0 {
		msg.ReplyMarkup = QuizKeyboard(quiz)
	}
	return b.sendOrApologize(ctx, msg, msgQuizFailed)
}

func (b *Bot) send(ctx context.Context, c tgbotapi.Chattable) error {
	if _, err := b.api.Send(c); err != nil {
		b.logger(ctx).Error("send message", "error", err)
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// sendOrApologize sends msg and, when Telegram rejects it (bad Markdown, an
// invalid keyboard), sends the plain apology instead. The first error is
// returned either way.
func (b *Bot) sendOrApologize(ctx context.Context, msg tgbotapi.MessageConfig, apology string) error {
	err := b.send(ctx, msg)
	if err == nil {
		return nil
	}
	_ = b.send(ctx, tgbotapi.NewMessage(msg.ChatID, apology))
	return err
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	_ = b.send(ctx, tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) replyWithKeyboard(ctx context.Context, chatID int64, text string, markdown bool, kb tgbotapi.ReplyKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}
	msg.ReplyMarkup = kb
	_ = b.send(ctx, msg)
}

func (b *Bot) logger(ctx context.Context) *slog.Logger {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return b.log.With("request_id", id)
	}
	return b.log
}
