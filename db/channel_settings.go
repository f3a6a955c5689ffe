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

type PostgresChannelSettingsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for channel_settings table
var channelSettingsColumns = []string{
	"id",
	"channel_id",
	"guild_id",
	"visible",
	"created_at",
	"updated_at",
}

func NewPostgresChannelSettingsRepository(db *sqlx.DB, schema string) *PostgresChannelSettingsRepository {
	return &PostgresChannelSettingsRepository{db: db, schema: schema}
}

func (r *PostgresChannelSettingsRepository) GetChannelSetting(
	ctx context.Context,
	channelID string,
) (mo.Option[*models.ChannelSetting], error) {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(channelSettingsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.channel_settings
		WHERE channel_id = $1`,
		columnsStr, r.schema)

	var setting models.ChannelSetting
	err := db.GetContext(ctx, &setting, query, channelID)
	if err != nil {
		if err == sql.ErrNoRows {
			return mo.None[*models.ChannelSetting](), nil
		}
		return mo.None[*models.ChannelSetting](), fmt.Errorf("failed to get channel setting: %w", err)
	}

	return mo.Some(&setting), nil
}

func (r *PostgresChannelSettingsRepository) UpsertChannelSetting(
	ctx context.Context,
	guildID string,
	channelID string,
	visible bool,
) (*models.ChannelSetting, error) {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(channelSettingsColumns, ", ")
	query := fmt.Sprintf(`
		INSERT INTO %s.channel_settings (id, channel_id, guild_id, visible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (channel_id) DO UPDATE SET visible = $4, updated_at = NOW()
		RETURNING %s`,
		r.schema, columnsStr)

	var setting models.ChannelSetting
	err := db.GetContext(ctx, &setting, query, core.NewID(core.IDPrefixChannelSetting), channelID, guildID, visible)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert channel setting: %w", err)
	}

	return &setting, nil
}

// DeleteChannelSetting removes the override so the channel falls back to the
// default visibility heuristic. Returns false when no override existed.
func (r *PostgresChannelSettingsRepository) DeleteChannelSetting(
	ctx context.Context,
	channelID string,
) (bool, error) {
	db := dbtx.GetTransactional(ctx, r.db)
	query := fmt.Sprintf(`
		DELETE FROM %s.channel_settings
		WHERE channel_id = $1`,
		r.schema)

	result, err := db.ExecContext(ctx, query, channelID)
	if err != nil {
		return false, fmt.Errorf("failed to delete channel setting: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *PostgresChannelSettingsRepository) ListChannelSettingsByGuild(
	ctx context.Context,
	guildID string,
) ([]*models.ChannelSetting, error) {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(channelSettingsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.channel_settings
		WHERE guild_id = $1
		ORDER BY created_at ASC`,
		columnsStr, r.schema)

	var settings []models.ChannelSetting
	err := db.SelectContext(ctx, &settings, query, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channel settings: %w", err)
	}

	result := make([]*models.ChannelSetting, len(settings))
	for i := range settings {
		result[i] = &settings[i]
	}

	return result, nil
}
