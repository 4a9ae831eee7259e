package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dimaskresna/lelang-bot/internal/bid"
	"github.com/dimaskresna/lelang-bot/internal/journal"
	"github.com/dimaskresna/lelang-bot/internal/model"
	"github.com/dimaskresna/lelang-bot/internal/monitor"
	"github.com/dimaskresna/lelang-bot/internal/notify"
)

var errNoAuction = errors.New("no auction configured")

// fetcherFor builds the chat's snapshot source. A fresh snapshot pushed by
// the browser extension wins over an API fetch, because only the page shows
// the countdown.
func (b *Bot) fetcherFor(chatID int64) monitor.Fetcher {
	return monitor.FetcherFunc(func(ctx context.Context) (model.Snapshot, error) {
		sess, ok := b.store.Get(chatID)
		if !ok || sess.AuctionID == "" {
			return model.Snapshot{}, errNoAuction
		}

		if b.cache != nil {
			// Only pushes tagged with the configured lot may stand in for an
			// API fetch; an untagged push could be showing any page.
			if snap, ok := b.cache.Latest(chatID, b.cfg.FeedMaxAge); ok && snap.AuctionID == sess.AuctionID {
				return snap, nil
			}
		}

		return b.client.FetchSnapshot(ctx, sess, sess.AuctionID)
	})
}

// handlerFor builds the chat's tick handler: fold the snapshot back into the
// session, alert on events, journal transitions.
func (b *Bot) handlerFor(chatID int64) monitor.EventHandler {
	return monitor.EventHandlerFunc(func(snap model.Snapshot, events []model.Event) {
		b.store.Update(chatID, func(sess *model.Session) {
			if snap.CurrentPrice != nil {
				price := *snap.CurrentPrice
				sess.LastKnownHighBid = &price
			}
			if snap.LimitPrice != nil {
				sess.LimitPrice = snap.LimitPrice
			}
			if snap.BidIncrement != nil {
				sess.BidIncrement = snap.BidIncrement
			}
		})

		if len(events) > 0 && b.journal != nil {
			b.journal.Push(journal.SnapshotEntry(chatID, snap))
		}

		for _, ev := range events {
			b.notifier.Event(chatID, ev)
			if b.journal != nil {
				b.journal.Push(journal.EventEntry(chatID, snap.AuctionID, ev))
			}
			if _, ok := ev.(model.SessionExpired); ok {
				b.store.Clear(chatID)
			}
		}
	})
}

func (b *Bot) onStopFor(chatID int64) func(monitor.StopReason) {
	return func(reason monitor.StopReason) {
		b.store.SetMonitoring(chatID, false)
		b.notifier.Stopped(chatID, string(reason))
	}
}

// startMonitoring validates the chat's setup and starts its monitor.
func (b *Bot) startMonitoring(ctx context.Context, chatID int64) error {
	sess, ok := b.store.Get(chatID)
	if !ok || sess.AuctionID == "" {
		return errors.New("set an auction first with /setauction")
	}
	if !sess.HasCredentials() {
		return errors.New("set credentials first with /settoken or /setcookies")
	}

	err := b.monitors.Start(ctx, chatID, b.fetcherFor(chatID), b.handlerFor(chatID), b.onStopFor(chatID))
	if err != nil {
		return err
	}
	b.store.SetMonitoring(chatID, true)
	return nil
}

// announceMonitoring confirms a started monitor. The current price is quoted
// only when the extension feed already holds a fresh snapshot of the lot;
// the monitor's first tick owns the API fetch.
func (b *Bot) announceMonitoring(chatID int64) {
	text := "👀 Monitoring dimulai."
	if sess, ok := b.store.Get(chatID); ok && b.cache != nil {
		if snap, ok := b.cache.Latest(chatID, b.cfg.FeedMaxAge); ok &&
			snap.AuctionID == sess.AuctionID && snap.CurrentPrice != nil {
			text += "\nHarga saat ini: " + notify.FormatRupiah(*snap.CurrentPrice)
		}
	}
	b.notifier.Text(chatID, text)
}

// historyFetchTimeout bounds the bid-history lookup done before an increment
// bid. The bid itself must not wait long on a slow read.
const historyFetchTimeout = 5 * time.Second

// resolveAmount computes the increment bid: the most authoritative known high
// bid plus one increment. A live bid-history read outranks the session's
// cached price, which outranks bidding from the limit.
func (b *Bot) resolveAmount(ctx context.Context, sess model.Session) (int64, error) {
	increment := int64(0)
	if sess.BidIncrement != nil {
		increment = *sess.BidIncrement
	}

	var historyTop *int64
	if b.client != nil && sess.AuctionID != "" {
		ctx, cancel := context.WithTimeout(ctx, historyFetchTimeout)
		defer cancel()
		if hist, err := b.client.GetBidHistory(ctx, sess, sess.AuctionID); err != nil {
			b.logger.Warn("bid history fetch failed, using cached price", "chat_id", sess.ChatID, "err", err)
		} else if len(hist) > 0 {
			historyTop = &hist[0].Amount
		}
	}

	base := bid.ResolveBase(historyTop, sess.LastKnownHighBid)
	return bid.NextAmount(sess.LimitPrice, base, increment)
}

// submitBid resolves the amount (explicit, or highest-known plus one
// increment) and hands it to the orchestrator in the background. The
// orchestrator notifies the chat with the outcome.
func (b *Bot) submitBid(ctx context.Context, chatID int64, explicit *int64) error {
	sess, ok := b.store.Get(chatID)
	if !ok {
		return errNoAuction
	}

	var amount int64
	if explicit != nil {
		amount = *explicit
	} else {
		next, err := b.resolveAmount(ctx, sess)
		if err != nil {
			return fmt.Errorf("cannot compute bid amount: %w", err)
		}
		amount = next
	}

	go func() {
		res := b.orch.SubmitBid(context.Background(), sess, amount)
		if b.journal != nil {
			b.journal.Push(journal.BidResultEntry(chatID, sess.AuctionID, res))
		}
	}()
	return nil
}
