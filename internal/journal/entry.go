package journal

import (
	"fmt"
	"time"

	"github.com/dimaskresna/lelang-bot/internal/model"
)

// Entry kinds.
const (
	KindSnapshot       = "snapshot"
	KindNewHigherBid   = "event.new_higher_bid"
	KindOutbid         = "event.outbid"
	KindEndgame        = "event.endgame"
	KindSessionExpired = "event.session_expired"
	KindAuctionEnded   = "event.auction_ended"
	KindBidResult      = "bid.result"
)

// Entry is one journal row.
type Entry struct {
	ChatID     int64
	AuctionID  string
	Kind       string
	Price      *int64
	Detail     string
	RecordedAt time.Time
}

// SnapshotEntry records an observed snapshot.
func SnapshotEntry(chatID int64, snap model.Snapshot) Entry {
	return Entry{
		ChatID:     chatID,
		AuctionID:  snap.AuctionID,
		Kind:       KindSnapshot,
		Price:      snap.CurrentPrice,
		Detail:     fmt.Sprintf("countdown=%s own=%t status=%s", snap.Countdown, snap.IsOwnBid, snap.Status),
		RecordedAt: snap.CapturedAt,
	}
}

// EventEntry records a detected event.
func EventEntry(chatID int64, auctionID string, ev model.Event) Entry {
	entry := Entry{
		ChatID:     chatID,
		AuctionID:  auctionID,
		RecordedAt: time.Now(),
	}

	switch e := ev.(type) {
	case model.NewHigherBid:
		entry.Kind = KindNewHigherBid
		price := e.Price
		entry.Price = &price
		entry.Detail = fmt.Sprintf("rise=%d by_other=%t", e.Rise, e.ByOther)
	case model.Outbid:
		entry.Kind = KindOutbid
		price := e.Price
		entry.Price = &price
	case model.EndgameApproaching:
		entry.Kind = KindEndgame
		entry.Detail = e.Display
	case model.SessionExpired:
		entry.Kind = KindSessionExpired
	case model.AuctionEnded:
		entry.Kind = KindAuctionEnded
	default:
		entry.Kind = fmt.Sprintf("event.%s", ev.Kind())
	}

	return entry
}

// BidResultEntry records the outcome of a bid submission.
func BidResultEntry(chatID int64, auctionID string, res model.BidResult) Entry {
	amount := res.Amount
	detail := "ok"
	if !res.Success {
		detail = res.Error
	}
	return Entry{
		ChatID:     chatID,
		AuctionID:  auctionID,
		Kind:       KindBidResult,
		Price:      &amount,
		Detail:     detail,
		RecordedAt: time.Now(),
	}
}
