package bid

import (
	"errors"
	"fmt"
)

// ErrBidInFlight is returned when a bid for the same auction is still being
// submitted. The new command is rejected, never dispatched concurrently.
var ErrBidInFlight = errors.New("a bid for this auction is already in progress")

// PreconditionError reports a missing session field required for bidding.
// Not retryable; no network call was made.
type PreconditionError struct {
	Field string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("cannot bid: %s is not set", e.Field)
}
