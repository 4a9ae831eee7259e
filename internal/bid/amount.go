package bid

import "errors"

var (
	// ErrInvalidIncrement is returned when the bid increment is missing,
	// zero or negative.
	ErrInvalidIncrement = errors.New("bid increment must be positive")

	// ErrMissingBase is returned when neither a limit price nor a known
	// high bid is available to base the next amount on.
	ErrMissingBase = errors.New("no limit price or known high bid to base the amount on")
)

// NextAmount computes the next bid: the highest known bid plus one increment,
// or the limit price plus one increment when nobody has bid yet.
func NextAmount(limitPrice, highestKnown *int64, increment int64) (int64, error) {
	if increment <= 0 {
		return 0, ErrInvalidIncrement
	}
	switch {
	case highestKnown != nil:
		return *highestKnown + increment, nil
	case limitPrice != nil:
		return *limitPrice + increment, nil
	default:
		return 0, ErrMissingBase
	}
}

// ResolveBase picks the highest known bid from the available signals in
// authority order: the latest bid-history entry first, then the snapshot
// price, then nothing. The history endpoint and the status endpoint fail
// independently, so the freshest source that answered wins.
func ResolveBase(historyTop, snapshotPrice *int64) *int64 {
	if historyTop != nil {
		return historyTop
	}
	return snapshotPrice
}
