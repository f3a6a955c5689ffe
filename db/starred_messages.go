package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/mo"

	"starboard/core"
	dbtx "starboard/db/tx"
	"starboard/models"
)

type PostgresStarredMessagesRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for starred_messages table
var starredMessagesColumns = []string{
	"id",
	"message_id",
	"channel_id",
	"guild_id",
	"user_id",
	"count",
	"crosspost_id",
	"reactions",
	"created_at",
	"updated_at",
}

func NewPostgresStarredMessagesRepository(db *sqlx.DB, schema string) *PostgresStarredMessagesRepository {
	return &PostgresStarredMessagesRepository{db: db, schema: schema}
}

// CreateStarredMessage persists the promotion record. The unique constraint on
// message_id is the authoritative at-most-once guarantee for promotion; losing
// that race surfaces as core.ErrAlreadyExists.
func (r *PostgresStarredMessagesRepository) CreateStarredMessage(
	ctx context.Context,
	message *models.StarredMessage,
) error {
	db := dbtx.GetTransactional(ctx, r.db)
	query := fmt.Sprintf(`
		INSERT INTO %s.starred_messages (id, message_id, channel_id, guild_id, user_id, count, crosspost_id, reactions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())`,
		r.schema)

	_, err := db.ExecContext(
		ctx,
		query,
		message.ID,
		message.MessageID,
		message.ChannelID,
		message.GuildID,
		message.UserID,
		message.Count,
		message.CrosspostID,
		message.Reactions,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique violation
				return fmt.Errorf("starred message %s: %w", message.MessageID, core.ErrAlreadyExists)
			}
		}
		return fmt.Errorf("failed to create starred message: %w", err)
	}

	return nil
}

func (r *PostgresStarredMessagesRepository) GetStarredMessage(
	ctx context.Context,
	messageID string,
) (mo.Option[*models.StarredMessage], error) {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(starredMessagesColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.starred_messages
		WHERE message_id = $1`,
		columnsStr, r.schema)

	var message models.StarredMessage
	err := db.GetContext(ctx, &message, query, messageID)
	if err != nil {
		if err == sql.ErrNoRows {
			return mo.None[*models.StarredMessage](), nil
		}
		return mo.None[*models.StarredMessage](), fmt.Errorf("failed to get starred message: %w", err)
	}

	return mo.Some(&message), nil
}

// RefreshStarredMessageCount updates the tracked reaction count and appends
// the reacting user to the counted set.
func (r *PostgresStarredMessagesRepository) RefreshStarredMessageCount(
	ctx context.Context,
	messageID string,
	count int,
	reactorID string,
) (*models.StarredMessage, error) {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(starredMessagesColumns, ", ")
	query := fmt.Sprintf(`
		UPDATE %s.starred_messages
		SET count = $2, reactions = array_append(reactions, $3), updated_at = NOW()
		WHERE message_id = $1
		RETURNING %s`,
		r.schema, columnsStr)

	var message models.StarredMessage
	err := db.GetContext(ctx, &message, query, messageID, count, reactorID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("starred message not found")
		}
		return nil, fmt.Errorf("failed to refresh starred message count: %w", err)
	}

	return &message, nil
}

// DeleteStarredMessage removes the promotion record, making the source message
// eligible for promotion again. Returns false when no record existed.
func (r *PostgresStarredMessagesRepository) DeleteStarredMessage(
	ctx context.Context,
	messageID string,
) (bool, error) {
	db := dbtx.GetTransactional(ctx, r.db)
	query := fmt.Sprintf(`
		DELETE FROM %s.starred_messages
		WHERE message_id = $1`,
		r.schema)

	result, err := db.ExecContext(ctx, query, messageID)
	if err != nil {
		return false, fmt.Errorf("failed to delete starred message: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *PostgresStarredMessagesRepository) GetTopMessageAuthors(
	ctx context.Context,
	guildID string,
	limit int,
) ([]*models.MessageAuthorStat, error) {
	db := dbtx.GetTransactional(ctx, r.db)
	query := fmt.Sprintf(`
		SELECT user_id, COUNT(message_id) AS messages
		FROM %s.starred_messages
		WHERE guild_id = $1
		GROUP BY user_id
		ORDER BY messages DESC
		LIMIT $2`,
		r.schema)

	var stats []models.MessageAuthorStat
	err := db.SelectContext(ctx, &stats, query, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top message authors: %w", err)
	}

	result := make([]*models.MessageAuthorStat, len(stats))
	for i := range stats {
		result[i] = &stats[i]
	}

	return result, nil
}
