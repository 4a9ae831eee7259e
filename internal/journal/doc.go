// Package journal persists an append-only history of what the bot observed
// and did: snapshots, detected events, and bid submissions. Entries are
// queued in memory and flushed to Postgres in batches so the polling loop
// never waits on the database.
package journal
