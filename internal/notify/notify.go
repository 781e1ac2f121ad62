// Package notify отправляет пользователю уведомление о решении по его
// заявке. Отправка best-effort: ошибка логируется и не влияет на workflow.
package notify

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/labclass/scheduler/internal/model"
	"go.uber.org/zap"
)

// Notifier уведомляет автора заявки о её судьбе
type Notifier interface {
	ScheduleApproved(ctx context.Context, user *model.User, schedule *model.PendingSchedule)
	ScheduleDeclined(ctx context.Context, user *model.User, schedule *model.PendingSchedule, message string)
}

// TelegramNotifier шлёт уведомления через Telegram-бота
type TelegramNotifier struct {
	bot    *bot.Bot
	logger *zap.Logger
}

func NewTelegramNotifier(token string, logger *zap.Logger) (*TelegramNotifier, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: b, logger: logger}, nil
}

func (n *TelegramNotifier) ScheduleApproved(ctx context.Context, user *model.User, schedule *model.PendingSchedule) {
	text := fmt.Sprintf(
		"✅ Your lab class request was approved!\n\n%s %s\n%s — %s",
		schedule.Date, schedule.TimeSlot, schedule.Subject, schedule.Batch,
	)
	n.send(ctx, user, text)
}

func (n *TelegramNotifier) ScheduleDeclined(ctx context.Context, user *model.User, schedule *model.PendingSchedule, message string) {
	text := fmt.Sprintf(
		"❌ Your lab class request was declined.\n\n%s %s\n%s — %s",
		schedule.Date, schedule.TimeSlot, schedule.Subject, schedule.Batch,
	)
	if message != "" {
		text += "\n\nReason: " + message
	}
	n.send(ctx, user, text)
}

func (n *TelegramNotifier) send(ctx context.Context, user *model.User, text string) {
	if user == nil || user.TelegramChatID == nil {
		return
	}

	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: *user.TelegramChatID,
		Text:   text,
	})
	if err != nil {
		n.logger.Warn("Failed to send telegram notification",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
	}
}

// NoopNotifier используется когда TELEGRAM_TOKEN не задан
type NoopNotifier struct{}

func (NoopNotifier) ScheduleApproved(context.Context, *model.User, *model.PendingSchedule) {}

func (NoopNotifier) ScheduleDeclined(context.Context, *model.User, *model.PendingSchedule, string) {}
