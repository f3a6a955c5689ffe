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

type PostgresStarCountsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for star_counts table
var starCountsColumns = []string{
	"id",
	"guild_id",
	"user_id",
	"amount",
	"created_at",
	"updated_at",
}

func NewPostgresStarCountsRepository(db *sqlx.DB, schema string) *PostgresStarCountsRepository {
	return &PostgresStarCountsRepository{db: db, schema: schema}
}

// AdjustStarCount applies a +1/-1 delta to the (guild, user) tally in a single
// upsert. A freshly created row clamps the initial amount at zero so a remove
// event seen before any add does not start the tally negative.
func (r *PostgresStarCountsRepository) AdjustStarCount(
	ctx context.Context,
	guildID string,
	userID string,
	delta int,
) (*models.StarCount, error) {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(starCountsColumns, ", ")
	query := fmt.Sprintf(`
		INSERT INTO %s.star_counts (id, guild_id, user_id, amount, created_at, updated_at)
		VALUES ($1, $2, $3, GREATEST($4, 0), NOW(), NOW())
		ON CONFLICT (guild_id, user_id) DO UPDATE SET amount = star_counts.amount + $4, updated_at = NOW()
		RETURNING %s`,
		r.schema, columnsStr)

	var count models.StarCount
	err := db.GetContext(ctx, &count, query, core.NewID(core.IDPrefixStarCount), guildID, userID, delta)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust star count: %w", err)
	}

	return &count, nil
}

func (r *PostgresStarCountsRepository) GetStarCount(
	ctx context.Context,
	guildID string,
	userID string,
) (mo.Option[*models.StarCount], error) {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(starCountsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.star_counts
		WHERE guild_id = $1 AND user_id = $2`,
		columnsStr, r.schema)

	var count models.StarCount
	err := db.GetContext(ctx, &count, query, guildID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return mo.None[*models.StarCount](), nil
		}
		return mo.None[*models.StarCount](), fmt.Errorf("failed to get star count: %w", err)
	}

	return mo.Some(&count), nil
}

func (r *PostgresStarCountsRepository) GetTopStarGivers(
	ctx context.Context,
	guildID string,
	limit int,
) ([]*models.StarCount, error) {
	db := dbtx.GetTransactional(ctx, r.db)
	columnsStr := strings.Join(starCountsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.star_counts
		WHERE guild_id = $1
		ORDER BY amount DESC
		LIMIT $2`,
		columnsStr, r.schema)

	var counts []models.StarCount
	err := db.SelectContext(ctx, &counts, query, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top star givers: %w", err)
	}

	result := make([]*models.StarCount, len(counts))
	for i := range counts {
		result[i] = &counts[i]
	}

	return result, nil
}
