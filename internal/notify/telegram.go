package notify

import (
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dimaskresna/lelang-bot/internal/model"
)

// Callback payloads for the inline buttons attached to bid alerts.
const (
	CallbackBidIncrement = "bid_kelipatan"
	CallbackStopMonitor  = "stop_monitor"
)

// Sender is the slice of the Telegram bot API the notifier needs.
// *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram delivers notifications to chats. It satisfies the orchestrator's
// result-notifier contract.
type Telegram struct {
	sender Sender
	logger *slog.Logger
}

// NewTelegram creates a notifier on top of a bot API connection.
func NewTelegram(sender Sender, logger *slog.Logger) *Telegram {
	if logger == nil {
		logger = slog.Default()
	}
	return &Telegram{sender: sender, logger: logger}
}

// Event sends an alert for a detected auction event. Bid alerts carry inline
// buttons for a one-tap increment bid and for stopping the monitor.
func (n *Telegram) Event(chatID int64, ev model.Event) {
	text := EventText(ev)
	if text == "" {
		return
	}

	msg := tgbotapi.NewMessage(chatID, text)
	switch ev.(type) {
	case model.NewHigherBid, model.Outbid:
		msg.ReplyMarkup = actionKeyboard()
	}

	n.send(msg)
}

// BidResult reports the outcome of a bid submission.
func (n *Telegram) BidResult(chatID int64, res model.BidResult) {
	n.send(tgbotapi.NewMessage(chatID, BidResultText(res)))
}

// Stopped tells the chat its monitor ended and why.
func (n *Telegram) Stopped(chatID int64, reason string) {
	n.send(tgbotapi.NewMessage(chatID, StoppedText(reason)))
}

// Text sends a plain message.
func (n *Telegram) Text(chatID int64, text string) {
	n.send(tgbotapi.NewMessage(chatID, text))
}

func (n *Telegram) send(msg tgbotapi.MessageConfig) {
	if _, err := n.sender.Send(msg); err != nil {
		n.logger.Warn("telegram send failed", "chat_id", msg.ChatID, "err", err)
	}
}

func actionKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💸 Bid +Kelipatan", CallbackBidIncrement),
			tgbotapi.NewInlineKeyboardButtonData("🛑 Stop", CallbackStopMonitor),
		),
	)
}
