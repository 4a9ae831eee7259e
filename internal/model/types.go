package model

import (
	"time"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Observations
// -----------------------------------------------------------------------------

// Snapshot is one observation of an auction's visible state. Snapshots are
// immutable once constructed; producers (the REST fetcher or the extension
// feed) build a fresh one per tick and the monitor keeps only the latest two.
type Snapshot struct {
	AuctionID string // Lot UUID from lelang.go.id

	// CurrentPrice is the highest bid seen this tick, nil when the feed had
	// no price. IsOwnBid is only meaningful when CurrentPrice is non-nil:
	// you cannot know whose bid leads without seeing a bid.
	CurrentPrice *int64
	IsOwnBid     bool

	// Countdown is the raw display string (DD:HH:MM:SS), empty if unknown.
	// Kept as a string because the endgame alert re-arms on display changes.
	Countdown string

	IsLoggedIn   bool
	LimitPrice   *int64 // Nilai limit of the lot
	BidIncrement *int64 // Kelipatan bid
	LotCode      string // Human-facing lot code (e.g. from the status API)
	Status       string // Upstream auction status string, "" if unknown

	CapturedAt time.Time
}

// Remaining parses the snapshot countdown. ok is false when the countdown is
// absent or unparseable.
func (s Snapshot) Remaining() (d time.Duration, ok bool) {
	if s.Countdown == "" {
		return 0, false
	}
	d, err := ParseCountdown(s.Countdown)
	if err != nil {
		return 0, false
	}
	return d, true
}

// Ended reports whether this snapshot shows a finished auction: either the
// countdown hit zero or the upstream status says so.
func (s Snapshot) Ended() bool {
	if d, ok := s.Remaining(); ok && d <= 0 {
		return true
	}
	return terminalStatus(s.Status)
}

// -----------------------------------------------------------------------------
// Sessions
// -----------------------------------------------------------------------------

// Session holds per-chat credentials and targeting info. Sessions are owned by
// the session store; everything else reads copies through its accessors.
type Session struct {
	ChatID       int64
	AuctionID    string
	BearerToken  string
	CookieHeader string
	Passkey      string // 6-digit bidding PIN

	LimitPrice       *int64
	BidIncrement     *int64
	LastKnownHighBid *int64

	MonitoringActive bool
}

// HasCredentials reports whether the session carries any credential material
// usable against the bidding API (bearer token or cookie header).
func (s Session) HasCredentials() bool {
	return s.BearerToken != "" || s.CookieHeader != ""
}

// -----------------------------------------------------------------------------
// Bid commands
// -----------------------------------------------------------------------------

// BidCommand is one request to place a bid.
type BidCommand struct {
	ID          uuid.UUID // Stamped per command for journaling
	AuctionID   string
	Amount      int64
	Passkey     string
	RequestedAt time.Time
}

// BidResult is the outcome of a bid command, success or not.
type BidResult struct {
	Success bool
	Error   string // Empty on success
	Amount  int64
}
