package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"funfact_bot/internal/model"
)

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	tag := model.CallbackTag(cb.Data)

	var chatID int64
	if cb.Message != nil {
		chatID = cb.Message.Chat.ID
	}

	log := b.logger(ctx).With("tag", cb.Data, "chat_id", chatID)
	if cb.From != nil {
		log = log.With("user_id", cb.From.ID)
	}
	log.Info("callback")

	switch tag {
	case model.TagCorrect:
		b.answerCallback(ctx, cb.ID, ackCorrect)
	case model.TagWrong:
		b.answerCallback(ctx, cb.ID, ackWrong)
	case model.TagNewFact:
		b.answerCallback(ctx, cb.ID, "")
		if chatID != 0 {
			_ = b.sendFact(ctx, chatID)
		}
	default:
		b.answerCallback(ctx, cb.ID, "")
	}
}

func (b *Bot) answerCallback(ctx context.Context, callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		b.logger(ctx).Error("answer callback", "error", err)
	}
}
