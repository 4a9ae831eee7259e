// Package feed accepts auction snapshots pushed over WebSocket by the
// browser extension. Pushed snapshots include the page countdown, which the
// REST API cannot provide, so the monitor prefers a fresh pushed snapshot
// over an API fetch.
package feed
