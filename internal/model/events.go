package model

import "time"

// EventKind names a domain event type.
type EventKind string

const (
	KindNewHigherBid       EventKind = "new_higher_bid"
	KindOutbid             EventKind = "outbid"
	KindEndgameApproaching EventKind = "endgame_approaching"
	KindSessionExpired     EventKind = "session_expired"
	KindAuctionEnded       EventKind = "auction_ended"
)

// Event is a detected auction state transition. Events are pure data,
// produced by the change detector and consumed once by the notifier.
type Event interface {
	Kind() EventKind
}

// NewHigherBid fires when the price rose and the lead is not the user's.
type NewHigherBid struct {
	Price   int64
	Rise    int64 // Price - previous price
	ByOther bool
	LotCode string
}

func (NewHigherBid) Kind() EventKind { return KindNewHigherBid }

// Outbid fires when the user held the lead on the previous tick and lost it.
// Distinct from NewHigherBid: both may fire from one comparison.
type Outbid struct {
	PreviousOwn bool
	Price       int64
}

func (Outbid) Kind() EventKind { return KindOutbid }

// EndgameApproaching fires inside the final ten minutes, re-arming every time
// the displayed countdown changes.
type EndgameApproaching struct {
	Remaining time.Duration
	Display   string
}

func (EndgameApproaching) Kind() EventKind { return KindEndgameApproaching }

// SessionExpired fires on a logged-in to logged-out transition. Terminal for
// monitoring.
type SessionExpired struct{}

func (SessionExpired) Kind() EventKind { return KindSessionExpired }

// AuctionEnded fires when the countdown reaches zero or the upstream status
// reports a closed auction. Terminal for monitoring.
type AuctionEnded struct{}

func (AuctionEnded) Kind() EventKind { return KindAuctionEnded }
