package journal

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS auction_journal (
	id          BIGSERIAL PRIMARY KEY,
	chat_id     BIGINT NOT NULL,
	auction_id  TEXT NOT NULL,
	kind        TEXT NOT NULL,
	price       BIGINT,
	detail      TEXT NOT NULL DEFAULT '',
	recorded_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS auction_journal_chat_idx
	ON auction_journal (chat_id, recorded_at);
`

// EnsureSchema creates the journal table if it does not exist.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure journal schema: %w", err)
	}
	return nil
}
