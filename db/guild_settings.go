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

type PostgresGuildSettingsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for guild_settings table
var guildSettingsColumns = []string{
	"id",
	"guild_id",
	"amount",
	"feed_channel_id",
	"custom_emoji",
	"unicode_emoji",
	"created_at",
	"updated_at",
}

func NewPostgresGuildSettingsRepository(db *sqlx.DB, schema string) *PostgresGuildSettingsRepository {
	return &PostgresGuildSettingsRepository{db: db, schema: schema}
}

func (r *PostgresGuildSettingsRepository) GetGuildSetting(
	ctx context.Context,
	guildID string,
) (mo.Option[*models.GuildSetting], error) {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(guildSettingsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.guild_settings
		WHERE guild_id = $1`,
		columnsStr, r.schema)

	var setting models.GuildSetting
	err := db.GetContext(ctx, &setting, query, guildID)
	if err != nil {
		if err == sql.ErrNoRows {
			return mo.None[*models.GuildSetting](), nil
		}
		return mo.None[*models.GuildSetting](), fmt.Errorf("failed to get guild setting: %w", err)
	}

	return mo.Some(&setting), nil
}

// UpsertAmount sets the promotion threshold, creating the guild's settings row
// with defaults when it does not exist yet.
func (r *PostgresGuildSettingsRepository) UpsertAmount(
	ctx context.Context,
	guildID string,
	amount int,
) (*models.GuildSetting, error) {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(guildSettingsColumns, ", ")
	query := fmt.Sprintf(`
		INSERT INTO %s.guild_settings (id, guild_id, amount, custom_emoji, unicode_emoji, created_at, updated_at)
		VALUES ($1, $2, $3, '{}', '{}', NOW(), NOW())
		ON CONFLICT (guild_id) DO UPDATE SET amount = $3, updated_at = NOW()
		RETURNING %s`,
		r.schema, columnsStr)

	var setting models.GuildSetting
	err := db.GetContext(ctx, &setting, query, core.NewID(core.IDPrefixGuildSetting), guildID, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert guild amount: %w", err)
	}

	return &setting, nil
}

// UpsertFeedChannel sets the starboard feed channel, creating the settings row
// when absent. Promotion is enabled from this point on.
func (r *PostgresGuildSettingsRepository) UpsertFeedChannel(
	ctx context.Context,
	guildID string,
	feedChannelID string,
) (*models.GuildSetting, error) {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(guildSettingsColumns, ", ")
	query := fmt.Sprintf(`
		INSERT INTO %s.guild_settings (id, guild_id, amount, feed_channel_id, custom_emoji, unicode_emoji, created_at, updated_at)
		VALUES ($1, $2, 3, $3, '{}', '{}', NOW(), NOW())
		ON CONFLICT (guild_id) DO UPDATE SET feed_channel_id = $3, updated_at = NOW()
		RETURNING %s`,
		r.schema, columnsStr)

	var setting models.GuildSetting
	err := db.GetContext(ctx, &setting, query, core.NewID(core.IDPrefixGuildSetting), guildID, feedChannelID)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert guild feed channel: %w", err)
	}

	return &setting, nil
}

// UpdateEmoji replaces the guild's allowed emoji sets. The row must already
// exist; emoji edits on an unconfigured guild create the row first via
// UpsertAmount or UpsertFeedChannel at the service layer.
func (r *PostgresGuildSettingsRepository) UpdateEmoji(
	ctx context.Context,
	guildID string,
	customEmoji []string,
	unicodeEmoji []string,
) (*models.GuildSetting, error) {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(guildSettingsColumns, ", ")
	query := fmt.Sprintf(`
		UPDATE %s.guild_settings
		SET custom_emoji = $2, unicode_emoji = $3, updated_at = NOW()
		WHERE guild_id = $1
		RETURNING %s`,
		r.schema, columnsStr)

	var setting models.GuildSetting
	err := db.GetContext(ctx, &setting, query, guildID, pq.Array(customEmoji), pq.Array(unicodeEmoji))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("guild setting not found")
		}
		return nil, fmt.Errorf("failed to update guild emoji: %w", err)
	}

	return &setting, nil
}
