package bot

import (
	"context"
	"fmt"
)

func (b *Bot) handleStart(ctx context.Context, chatID int64) {
	b.replyWithKeyboard(ctx, chatID, b.menu.layout.Welcome, true, b.menu.MainKeyboard())
}

func (b *Bot) handleInfo(ctx context.Context, chatID int64) {
	b.reply(ctx, chatID, b.menu.layout.Info)
}

func (b *Bot) handleFeedback(ctx context.Context, chatID int64) {
	b.reply(ctx, chatID, fmt.Sprintf(b.menu.layout.Feedback, b.cfg.FeedbackURL))
}

func (b *Bot) handleFactOrQuiz(ctx context.Context, chatID int64) {
	b.replyWithKeyboard(ctx, chatID, msgChooseKind, true, b.menu.ContentKeyboard())
}

func (b *Bot) handleFact(ctx context.Context, chatID int64) {
	_ = b.sendFact(ctx, chatID)
}

func (b *Bot) handleQuiz(ctx context.Context, chatID int64) {
	_ = b.sendQuiz(ctx, chatID)
}

func (b *Bot) handleSubscribe(ctx context.Context, chatID int64) {
	known, err := b.recipients.Contains(ctx, chatID)
	if err != nil {
		b.logger(ctx).Error("check recipient", "chat_id", chatID, "error", err)
		b.reply(ctx, chatID, msgFactFailed)
		return
	}
	if known {
		b.reply(ctx, chatID, msgAlreadySub)
		return
	}

	// Add still reports a concurrent subscribe of the same chat.
	added, err := b.recipients.Add(ctx, chatID)
	if err != nil {
		b.logger(ctx).Error("add recipient", "chat_id", chatID, "error", err)
		b.reply(ctx, chatID, msgFactFailed)
		return
	}
	if !added {
		b.reply(ctx, chatID, msgAlreadySub)
		return
	}
	b.logger(ctx).Info("recipient subscribed", "chat_id", chatID)
	b.reply(ctx, chatID, msgSubscribed)
}

func (b *Bot) handleMainMenu(ctx context.Context, chatID int64) {
	b.replyWithKeyboard(ctx, chatID, msgMainMenu, false, b.menu.MainKeyboard())
}

func (b *Bot) handleUnknown(ctx context.Context, chatID int64) {
	b.replyWithKeyboard(ctx, chatID, msgUnknown, false, b.menu.MainKeyboard())
}
