package api

import (
	"context"
	"fmt"
	"time"

	"github.com/dimaskresna/lelang-bot/internal/model"
)

// FetchSnapshot composes the status and history endpoints into a snapshot of
// the auction as the API sees it right now. Either endpoint may fail on its
// own; the snapshot carries whatever could be observed, and an error is
// returned only when both fail. A credential rejection from either endpoint
// yields a logged-out snapshot instead of an error, so the caller can raise
// a session-expiry alert rather than count it as a fetch failure.
func (c *Client) FetchSnapshot(ctx context.Context, sess model.Session, auctionID string) (model.Snapshot, error) {
	snap := model.Snapshot{
		AuctionID:  auctionID,
		IsLoggedIn: true,
		CapturedAt: time.Now(),
	}

	status, statusErr := c.GetAuctionStatus(ctx, sess, auctionID)
	history, historyErr := c.GetBidHistory(ctx, sess, auctionID)

	if IsAuthError(statusErr) || IsAuthError(historyErr) {
		snap.IsLoggedIn = false
		return snap, nil
	}
	if statusErr != nil && historyErr != nil {
		return model.Snapshot{}, fmt.Errorf("fetch snapshot: %w", statusErr)
	}

	if statusErr == nil {
		snap.Status = status.Status
		snap.LotCode = status.LotCode
		snap.LimitPrice = status.LimitPrice
		snap.BidIncrement = status.BidIncrement
	} else {
		c.logger.Warn("status endpoint unavailable, snapshot from history only", "err", statusErr)
	}

	if historyErr == nil {
		if len(history) > 0 {
			top := history[0]
			price := top.Amount
			snap.CurrentPrice = &price
			snap.IsOwnBid = top.Own
		}
	} else {
		c.logger.Warn("history endpoint unavailable, snapshot from status only", "err", historyErr)
	}

	return snap, nil
}
