package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	"starboard/core"
	dbtx "starboard/db/tx"
	"starboard/models"
)

type PostgresBlockedMessagesRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for blocked_messages table
var blockedMessagesColumns = []string{
	"id",
	"message_id",
	"created_at",
	"updated_at",
}

func NewPostgresBlockedMessagesRepository(db *sqlx.DB, schema string) *PostgresBlockedMessagesRepository {
	return &PostgresBlockedMessagesRepository{db: db, schema: schema}
}

func (r *PostgresBlockedMessagesRepository) GetBlockedMessage(
	ctx context.Context,
	messageID string,
) (mo.Option[*models.BlockedMessage], error) {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(blockedMessagesColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.blocked_messages
		WHERE message_id = $1`,
		columnsStr, r.schema)

	var blocked models.BlockedMessage
	err := db.GetContext(ctx, &blocked, query, messageID)
	if err != nil {
		if err == sql.ErrNoRows {
			return mo.None[*models.BlockedMessage](), nil
		}
		return mo.None[*models.BlockedMessage](), fmt.Errorf("failed to get blocked message: %w", err)
	}

	return mo.Some(&blocked), nil
}

// CreateBlockedMessage inserts into the ignore ledger. Blocking an already
// blocked message performs no duplicate write; the return value reports
// whether a new row was inserted.
func (r *PostgresBlockedMessagesRepository) CreateBlockedMessage(
	ctx context.Context,
	messageID string,
) (bool, error) {
	db := dbtx.GetTransactional(ctx, r.db)
	query := fmt.Sprintf(`
		INSERT INTO %s.blocked_messages (id, message_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (message_id) DO NOTHING`,
		r.schema)

	result, err := db.ExecContext(ctx, query, core.NewID(core.IDPrefixBlockedMessage), messageID)
	if err != nil {
		return false, fmt.Errorf("failed to create blocked message: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// DeleteBlockedMessage removes the ledger entry. Returns false when the
// message was not blocked.
func (r *PostgresBlockedMessagesRepository) DeleteBlockedMessage(
	ctx context.Context,
	messageID string,
) (bool, error) {
	db := dbtx.GetTransactional(ctx, r.db)
	query := fmt.Sprintf(`
		DELETE FROM %s.blocked_messages
		WHERE message_id = $1`,
		r.schema)

	result, err := db.ExecContext(ctx, query, messageID)
	if err != nil {
		return false, fmt.Errorf("failed to delete blocked message: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
