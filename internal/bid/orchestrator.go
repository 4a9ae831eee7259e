package bid

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dimaskresna/lelang-bot/internal/model"
)

// Transport submits bids to the remote bidding service. Implemented by the
// API client; both calls share the session's credential headers.
type Transport interface {
	// OpenBidSession opens or refreshes a bidding session for the auction.
	OpenBidSession(ctx context.Context, sess model.Session) error

	// PlaceBid submits the bid payload. Only called after OpenBidSession
	// succeeded.
	PlaceBid(ctx context.Context, sess model.Session, cmd model.BidCommand) error
}

// ResultNotifier receives every bid outcome exactly once.
type ResultNotifier interface {
	BidResult(chatID int64, res model.BidResult)
}

// Orchestrator sequences bid submission: precondition checks, the two-step
// remote protocol, and at most one in-flight bid per auction.
type Orchestrator struct {
	transport Transport
	notifier  ResultNotifier
	timeout   time.Duration
	logger    *slog.Logger

	mu       sync.Mutex
	inFlight map[string]struct{} // keyed by auction id
}

// NewOrchestrator creates an Orchestrator. timeout bounds one whole submit
// attempt (both remote calls, including the transport's retries).
func NewOrchestrator(transport Transport, notifier ResultNotifier, timeout time.Duration, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Orchestrator{
		transport: transport,
		notifier:  notifier,
		timeout:   timeout,
		logger:    logger,
		inFlight:  make(map[string]struct{}),
	}
}

// SubmitBid places one bid for the session's auction. Preconditions are
// checked in order (auction id, credentials, passkey); the first failure
// wins and nothing is sent. Every result, success or failure, is forwarded
// once to the notifier and also returned.
func (o *Orchestrator) SubmitBid(ctx context.Context, sess model.Session, amount int64) model.BidResult {
	if err := checkPreconditions(sess); err != nil {
		return o.finish(sess.ChatID, model.BidResult{Error: err.Error(), Amount: amount})
	}

	if !o.acquire(sess.AuctionID) {
		return o.finish(sess.ChatID, model.BidResult{Error: ErrBidInFlight.Error(), Amount: amount})
	}
	defer o.release(sess.AuctionID)

	cmd := model.BidCommand{
		ID:          uuid.New(),
		AuctionID:   sess.AuctionID,
		Amount:      amount,
		Passkey:     sess.Passkey,
		RequestedAt: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	o.logger.Info("submitting bid",
		"command_id", cmd.ID,
		"auction_id", cmd.AuctionID,
		"amount", cmd.Amount,
	)

	if err := o.transport.OpenBidSession(ctx, sess); err != nil {
		o.logger.Warn("open bid session failed",
			"command_id", cmd.ID,
			"auction_id", cmd.AuctionID,
			"err", err,
		)
		return o.finish(sess.ChatID, model.BidResult{Error: err.Error(), Amount: amount})
	}

	if err := o.transport.PlaceBid(ctx, sess, cmd); err != nil {
		o.logger.Warn("bid rejected",
			"command_id", cmd.ID,
			"auction_id", cmd.AuctionID,
			"amount", cmd.Amount,
			"err", err,
		)
		return o.finish(sess.ChatID, model.BidResult{Error: err.Error(), Amount: amount})
	}

	o.logger.Info("bid accepted",
		"command_id", cmd.ID,
		"auction_id", cmd.AuctionID,
		"amount", cmd.Amount,
	)
	return o.finish(sess.ChatID, model.BidResult{Success: true, Amount: amount})
}

// InFlight reports whether a bid for the auction is currently being submitted.
func (o *Orchestrator) InFlight(auctionID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.inFlight[auctionID]
	return ok
}

// checkPreconditions validates the session in fixed order; the first missing
// field wins.
func checkPreconditions(sess model.Session) error {
	if sess.AuctionID == "" {
		return &PreconditionError{Field: "auction id"}
	}
	if !sess.HasCredentials() {
		return &PreconditionError{Field: "bearer token or cookies"}
	}
	if sess.Passkey == "" {
		return &PreconditionError{Field: "bidding passkey"}
	}
	return nil
}

func (o *Orchestrator) acquire(auctionID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.inFlight[auctionID]; ok {
		return false
	}
	o.inFlight[auctionID] = struct{}{}
	return true
}

func (o *Orchestrator) release(auctionID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.inFlight, auctionID)
}

// finish forwards the result to the notifier and returns it.
func (o *Orchestrator) finish(chatID int64, res model.BidResult) model.BidResult {
	if o.notifier != nil {
		o.notifier.BidResult(chatID, res)
	}
	return res
}
