package star

import (
	"context"
	"fmt"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"starboard/models"
)

func setupEngineTestWithIgnoreEmoji(ignoreEmojiID string) (*StarUseCase, *engineMocks) {
	useCase, mocks := setupEngineTest()
	useCase.ignoreEmojiID = ignoreEmojiID
	return useCase, mocks
}

func TestIgnoreMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("blocks and reports no existing crosspost", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		mocks.blockedMessages.On("BlockMessage", ctx, "msg_1").Return(false, nil)
		mocks.starredMessages.On("GetStarredMessage", ctx, "msg_1").
			Return(mo.None[*models.StarredMessage](), nil)

		crosspostExists, err := useCase.IgnoreMessage(ctx, "chan_1", "msg_1")

		require.NoError(t, err)
		assert.False(t, crosspostExists)
		mocks.assertExpectations(t)
	})

	t.Run("reports existing crosspost without retracting it", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		starred := &models.StarredMessage{ID: "sm_1", MessageID: "msg_1", CrosspostID: "cp_1"}
		mocks.blockedMessages.On("BlockMessage", ctx, "msg_1").Return(false, nil)
		mocks.starredMessages.On("GetStarredMessage", ctx, "msg_1").
			Return(mo.Some(starred), nil)

		crosspostExists, err := useCase.IgnoreMessage(ctx, "chan_1", "msg_1")

		require.NoError(t, err)
		assert.True(t, crosspostExists)
		mocks.discord.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything)
	})

	t.Run("marks the message when an ignore emoji is configured", func(t *testing.T) {
		useCase, mocks := setupEngineTestWithIgnoreEmoji("ignore:123")

		mocks.blockedMessages.On("BlockMessage", ctx, "msg_1").Return(false, nil)
		mocks.starredMessages.On("GetStarredMessage", ctx, "msg_1").
			Return(mo.None[*models.StarredMessage](), nil)
		mocks.discord.On("AddReaction", "chan_1", "msg_1", "ignore:123").Return(nil)

		_, err := useCase.IgnoreMessage(ctx, "chan_1", "msg_1")

		require.NoError(t, err)
		mocks.assertExpectations(t)
	})

	t.Run("marker failure does not fail the block", func(t *testing.T) {
		useCase, mocks := setupEngineTestWithIgnoreEmoji("ignore:123")

		mocks.blockedMessages.On("BlockMessage", ctx, "msg_1").Return(false, nil)
		mocks.starredMessages.On("GetStarredMessage", ctx, "msg_1").
			Return(mo.None[*models.StarredMessage](), nil)
		mocks.discord.On("AddReaction", "chan_1", "msg_1", "ignore:123").
			Return(fmt.Errorf("missing permissions"))

		_, err := useCase.IgnoreMessage(ctx, "chan_1", "msg_1")

		require.NoError(t, err)
	})
}

func TestUnignoreMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("unblocks and removes the marker", func(t *testing.T) {
		useCase, mocks := setupEngineTestWithIgnoreEmoji("ignore:123")

		mocks.blockedMessages.On("UnblockMessage", ctx, "msg_1").Return(true, nil)
		mocks.discord.On("RemoveOwnReaction", "chan_1", "msg_1", "ignore:123").Return(nil)

		wasBlocked, err := useCase.UnignoreMessage(ctx, "chan_1", "msg_1")

		require.NoError(t, err)
		assert.True(t, wasBlocked)
		mocks.assertExpectations(t)
	})

	t.Run("reports when the message was never blocked", func(t *testing.T) {
		useCase, mocks := setupEngineTestWithIgnoreEmoji("ignore:123")

		mocks.blockedMessages.On("UnblockMessage", ctx, "msg_1").Return(false, nil)

		wasBlocked, err := useCase.UnignoreMessage(ctx, "chan_1", "msg_1")

		require.NoError(t, err)
		assert.False(t, wasBlocked)
		mocks.discord.AssertNotCalled(t, "RemoveOwnReaction", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDeleteCrosspost(t *testing.T) {
	ctx := context.Background()

	starred := &models.StarredMessage{
		ID:          "sm_1",
		MessageID:   "msg_1",
		ChannelID:   "chan_1",
		GuildID:     "guild_1",
		CrosspostID: "cp_1",
	}

	t.Run("deletes the crosspost and the record", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		mocks.starredMessages.On("GetStarredMessage", ctx, "msg_1").
			Return(mo.Some(starred), nil)
		mocks.guildSettings.On("GetGuildSettings", ctx, "guild_1").
			Return(mo.Some(createTestSettings(3, "feed_1")), nil)
		mocks.discord.On("DeleteMessage", "feed_1", "cp_1").Return(nil)
		mocks.starredMessages.On("DeleteStarredMessage", ctx, "msg_1").Return(true, nil)

		err := useCase.DeleteCrosspost(ctx, "msg_1")

		require.NoError(t, err)
		mocks.assertExpectations(t)
	})

	t.Run("errors when the message was never promoted", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		mocks.starredMessages.On("GetStarredMessage", ctx, "msg_1").
			Return(mo.None[*models.StarredMessage](), nil)

		err := useCase.DeleteCrosspost(ctx, "msg_1")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no crosspost")
		mocks.discord.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything)
	})

	t.Run("platform delete failure keeps the record", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		mocks.starredMessages.On("GetStarredMessage", ctx, "msg_1").
			Return(mo.Some(starred), nil)
		mocks.guildSettings.On("GetGuildSettings", ctx, "guild_1").
			Return(mo.Some(createTestSettings(3, "feed_1")), nil)
		mocks.discord.On("DeleteMessage", "feed_1", "cp_1").
			Return(fmt.Errorf("missing permissions"))

		err := useCase.DeleteCrosspost(ctx, "msg_1")

		require.Error(t, err)
		mocks.starredMessages.AssertNotCalled(t, "DeleteStarredMessage", mock.Anything, mock.Anything)
	})

	t.Run("record deletion failure after platform delete is not fatal", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		mocks.starredMessages.On("GetStarredMessage", ctx, "msg_1").
			Return(mo.Some(starred), nil)
		mocks.guildSettings.On("GetGuildSettings", ctx, "guild_1").
			Return(mo.Some(createTestSettings(3, "feed_1")), nil)
		mocks.discord.On("DeleteMessage", "feed_1", "cp_1").Return(nil)
		mocks.starredMessages.On("DeleteStarredMessage", ctx, "msg_1").
			Return(false, fmt.Errorf("connection reset"))

		err := useCase.DeleteCrosspost(ctx, "msg_1")

		require.NoError(t, err)
	})
}

func TestGetLeaderboard(t *testing.T) {
	ctx := context.Background()

	t.Run("combines authors and givers", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		authors := []*models.MessageAuthorStat{{UserID: "user_author", Messages: 4}}
		givers := []*models.StarCount{createTestStarCount(12)}

		mocks.starredMessages.On("GetTopMessageAuthors", ctx, "guild_1", leaderboardSize).
			Return(authors, nil)
		mocks.starCounts.On("GetTopStarGivers", ctx, "guild_1", leaderboardSize).
			Return(givers, nil)

		leaderboard, err := useCase.GetLeaderboard(ctx, "guild_1")

		require.NoError(t, err)
		assert.Equal(t, authors, leaderboard.TopAuthors)
		assert.Equal(t, givers, leaderboard.TopGivers)
	})

	t.Run("propagates storage errors", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		mocks.starredMessages.On("GetTopMessageAuthors", ctx, "guild_1", leaderboardSize).
			Return(nil, fmt.Errorf("connection reset"))

		_, err := useCase.GetLeaderboard(ctx, "guild_1")

		require.Error(t, err)
		mocks.starCounts.AssertNotCalled(t, "GetTopStarGivers", mock.Anything, mock.Anything, mock.Anything)
	})
}
