// Package bid computes bid amounts and drives bid submission.
//
// The calculator is pure arithmetic over the lot's limit price, the highest
// known bid and the increment (kelipatan). The orchestrator owns the
// submission protocol: precondition checks, the two-step open-session/submit
// exchange, and the one-bid-in-flight-per-auction guarantee.
package bid
