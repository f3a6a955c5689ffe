package starcounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starboard/db"
	"starboard/testutils"
)

func setupTestService(t *testing.T) (*StarCountsService, func()) {
	cfg, err := testutils.LoadTestConfig()
	if err != nil {
		t.Skipf("skipping integration test: %v", err)
	}

	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	require.NoError(t, err, "Failed to create database connection")

	starCountsRepo := db.NewPostgresStarCountsRepository(dbConn, cfg.DatabaseSchema)
	service := NewStarCountsService(starCountsRepo)

	cleanup := func() {
		dbConn.Close()
	}
	return service, cleanup
}

func TestStarCountsService(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("AdjustStarCount", func(t *testing.T) {
		t.Run("increments across events", func(t *testing.T) {
			guildID := testutils.TestGuildID()
			userID := testutils.TestUserID()

			count, err := service.AdjustStarCount(ctx, guildID, userID, 1)
			require.NoError(t, err)
			assert.Equal(t, 1, count.Amount)

			count, err = service.AdjustStarCount(ctx, guildID, userID, 1)
			require.NoError(t, err)
			assert.Equal(t, 2, count.Amount)
		})

		t.Run("decrements on removal", func(t *testing.T) {
			guildID := testutils.TestGuildID()
			userID := testutils.TestUserID()

			_, err := service.AdjustStarCount(ctx, guildID, userID, 1)
			require.NoError(t, err)

			count, err := service.AdjustStarCount(ctx, guildID, userID, -1)
			require.NoError(t, err)
			assert.Equal(t, 0, count.Amount)
		})

		t.Run("removal before any add starts at zero", func(t *testing.T) {
			guildID := testutils.TestGuildID()
			userID := testutils.TestUserID()

			count, err := service.AdjustStarCount(ctx, guildID, userID, -1)
			require.NoError(t, err)
			assert.Equal(t, 0, count.Amount)
		})

		t.Run("tallies are per guild", func(t *testing.T) {
			userID := testutils.TestUserID()
			guildA := testutils.TestGuildID()
			guildB := testutils.TestGuildID()

			_, err := service.AdjustStarCount(ctx, guildA, userID, 1)
			require.NoError(t, err)

			count, err := service.AdjustStarCount(ctx, guildB, userID, 1)
			require.NoError(t, err)
			assert.Equal(t, 1, count.Amount)
		})

		t.Run("rejects empty guild ID", func(t *testing.T) {
			_, err := service.AdjustStarCount(ctx, "", testutils.TestUserID(), 1)
			assert.Error(t, err)
		})
	})

	t.Run("GetTopStarGivers", func(t *testing.T) {
		t.Run("orders by amount descending", func(t *testing.T) {
			guildID := testutils.TestGuildID()
			heavy := testutils.TestUserID()
			light := testutils.TestUserID()

			for i := 0; i < 3; i++ {
				_, err := service.AdjustStarCount(ctx, guildID, heavy, 1)
				require.NoError(t, err)
			}
			_, err := service.AdjustStarCount(ctx, guildID, light, 1)
			require.NoError(t, err)

			givers, err := service.GetTopStarGivers(ctx, guildID, 10)
			require.NoError(t, err)
			require.Len(t, givers, 2)
			assert.Equal(t, heavy, givers[0].UserID)
			assert.Equal(t, 3, givers[0].Amount)
			assert.Equal(t, light, givers[1].UserID)
		})

		t.Run("respects the limit", func(t *testing.T) {
			guildID := testutils.TestGuildID()
			for i := 0; i < 3; i++ {
				_, err := service.AdjustStarCount(ctx, guildID, testutils.TestUserID(), 1)
				require.NoError(t, err)
			}

			givers, err := service.GetTopStarGivers(ctx, guildID, 2)
			require.NoError(t, err)
			assert.Len(t, givers, 2)
		})
	})
}
