package bot

import (
	"context"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dimaskresna/lelang-bot/internal/api"
	"github.com/dimaskresna/lelang-bot/internal/bid"
	"github.com/dimaskresna/lelang-bot/internal/feed"
	"github.com/dimaskresna/lelang-bot/internal/journal"
	"github.com/dimaskresna/lelang-bot/internal/monitor"
	"github.com/dimaskresna/lelang-bot/internal/notify"
	"github.com/dimaskresna/lelang-bot/internal/session"
)

// Config holds bot behavior settings.
type Config struct {
	UpdateTimeout int           // Telegram long-poll timeout in seconds
	FeedMaxAge    time.Duration // how fresh a pushed snapshot must be to beat an API fetch
}

// Options carries the bot's collaborators. Cache and Journal are optional;
// nil disables the extension feed and persistence respectively.
type Options struct {
	Store        *session.Store
	Monitors     *monitor.Manager
	Orchestrator *bid.Orchestrator
	Client       *api.Client
	Notifier     *notify.Telegram
	Cache        *feed.Cache
	Journal      *journal.Queue
	Logger       *slog.Logger
}

// Bot serves Telegram updates.
type Bot struct {
	cfg      Config
	tg       *tgbotapi.BotAPI
	store    *session.Store
	monitors *monitor.Manager
	orch     *bid.Orchestrator
	client   *api.Client
	notifier *notify.Telegram
	cache    *feed.Cache
	journal  *journal.Queue
	logger   *slog.Logger
}

// New creates a Bot.
func New(cfg Config, tg *tgbotapi.BotAPI, opts Options) *Bot {
	if cfg.UpdateTimeout <= 0 {
		cfg.UpdateTimeout = 60
	}
	if cfg.FeedMaxAge <= 0 {
		cfg.FeedMaxAge = 5 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		cfg:      cfg,
		tg:       tg,
		store:    opts.Store,
		monitors: opts.Monitors,
		orch:     opts.Orchestrator,
		client:   opts.Client,
		notifier: opts.Notifier,
		cache:    opts.Cache,
		journal:  opts.Journal,
		logger:   logger,
	}
}

// Run consumes Telegram updates until ctx is canceled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout
	updates := b.tg.GetUpdatesChan(u)

	b.logger.Info("bot started", "username", b.tg.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.tg.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.Message != nil:
		b.notifier.Text(update.Message.Chat.ID, "Gunakan /help untuk daftar perintah.")
	}
}
