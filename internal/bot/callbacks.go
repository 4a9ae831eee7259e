package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dimaskresna/lelang-bot/internal/notify"
)

// handleCallback serves the inline buttons attached to bid alerts.
func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID

	switch cq.Data {
	case notify.CallbackBidIncrement:
		if err := b.submitBid(ctx, chatID, nil); err != nil {
			b.answerCallback(cq.ID, "❌ "+err.Error())
			return
		}
		b.answerCallback(cq.ID, "Mengirim bid...")

	case notify.CallbackStopMonitor:
		if b.monitors.Stop(chatID) {
			b.answerCallback(cq.ID, "Monitoring dihentikan.")
		} else {
			b.answerCallback(cq.ID, "Tidak ada monitoring yang berjalan.")
		}

	default:
		b.logger.Warn("unknown callback", "chat_id", chatID, "data", cq.Data)
		b.answerCallback(cq.ID, "")
	}
}

func (b *Bot) answerCallback(id, text string) {
	if _, err := b.tg.Request(tgbotapi.NewCallback(id, text)); err != nil {
		b.logger.Warn("answer callback failed", "err", err)
	}
}
