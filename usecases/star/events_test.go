package star

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"starboard/clients"
	"starboard/clients/discord"
	"starboard/core"
	"starboard/models"
	"starboard/services/blockedmessages"
	"starboard/services/channelsettings"
	"starboard/services/guildsettings"
	"starboard/services/starcounts"
	"starboard/services/starredmessages"
	"starboard/services/txmanager"
)

type engineMocks struct {
	discord         *discord.MockDiscordClient
	guildSettings   *guildsettings.MockGuildSettingsService
	channelSettings *channelsettings.MockChannelSettingsService
	starCounts      *starcounts.MockStarCountsService
	starredMessages *starredmessages.MockStarredMessagesService
	blockedMessages *blockedmessages.MockBlockedMessagesService
}

func (m *engineMocks) assertExpectations(t *testing.T) {
	m.discord.AssertExpectations(t)
	m.guildSettings.AssertExpectations(t)
	m.channelSettings.AssertExpectations(t)
	m.starCounts.AssertExpectations(t)
	m.starredMessages.AssertExpectations(t)
	m.blockedMessages.AssertExpectations(t)
}

func setupEngineTest() (*StarUseCase, *engineMocks) {
	mocks := &engineMocks{
		discord:         &discord.MockDiscordClient{},
		guildSettings:   &guildsettings.MockGuildSettingsService{},
		channelSettings: &channelsettings.MockChannelSettingsService{},
		starCounts:      &starcounts.MockStarCountsService{},
		starredMessages: &starredmessages.MockStarredMessagesService{},
		blockedMessages: &blockedmessages.MockBlockedMessagesService{},
	}

	useCase := NewStarUseCase(
		mocks.discord,
		mocks.guildSettings,
		mocks.channelSettings,
		mocks.starCounts,
		mocks.starredMessages,
		mocks.blockedMessages,
		&txmanager.PassthroughTransactionManager{},
		"",
	)
	return useCase, mocks
}

func createTestEvent(count int) models.ReactionEvent {
	return models.ReactionEvent{
		GuildID:   "guild_1",
		ChannelID: "chan_1",
		MessageID: "msg_1",
		UserID:    "user_reactor",
		AuthorID:  "user_author",
		EmojiName: "⭐",
		Count:     count,
	}
}

func createTestSettings(amount int, feedChannelID string) *models.GuildSetting {
	setting := &models.GuildSetting{
		ID:           "gs_test",
		GuildID:      "guild_1",
		Amount:       amount,
		UnicodeEmoji: pq.StringArray{"⭐"},
	}
	if feedChannelID != "" {
		setting.FeedChannelID = &feedChannelID
	}
	return setting
}

func createTestStarCount(amount int) *models.StarCount {
	return &models.StarCount{
		ID:      "sc_test",
		GuildID: "guild_1",
		UserID:  "user_reactor",
		Amount:  amount,
	}
}

// expectPublish wires the mocks for a successful crosspost.
func expectPublish(mocks *engineMocks, crosspostID string) {
	mocks.discord.On("GetMessage", "chan_1", "msg_1").Return(&clients.DiscordMessage{
		ID:             "msg_1",
		ChannelID:      "chan_1",
		GuildID:        "guild_1",
		Content:        "great post",
		AuthorID:       "user_author",
		AuthorUsername: "author",
	}, nil)
	mocks.discord.On("GetChannel", "chan_1").Return(&clients.DiscordChannel{
		ID:      "chan_1",
		GuildID: "guild_1",
		Name:    "general",
		IsText:  true,
	}, nil)
	mocks.discord.On("EnsureManagedWebhook", "feed_1").Return(&clients.DiscordWebhook{
		ID:        "wh_1",
		Token:     "tok",
		ChannelID: "feed_1",
	}, nil)
	mocks.discord.On("SendWebhookMessage", mock.Anything, mock.Anything).Return(crosspostID, nil)
}

func TestProcessReactionAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("self-star is ignored entirely", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		event := createTestEvent(5)
		event.UserID = event.AuthorID

		err := useCase.ProcessReactionAdd(ctx, event)

		require.NoError(t, err)
		mocks.starCounts.AssertNotCalled(t, "AdjustStarCount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("reaction on own crosspost is ignored entirely", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		event := createTestEvent(5)
		event.FromOwnWebhook = true

		err := useCase.ProcessReactionAdd(ctx, event)

		require.NoError(t, err)
		mocks.starCounts.AssertNotCalled(t, "AdjustStarCount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("tally advances even without guild configuration", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		mocks.starCounts.On("AdjustStarCount", ctx, "guild_1", "user_reactor", 1).
			Return(createTestStarCount(1), nil)
		mocks.guildSettings.On("GetGuildSettings", ctx, "guild_1").
			Return(mo.None[*models.GuildSetting](), nil)

		err := useCase.ProcessReactionAdd(ctx, createTestEvent(5))

		require.NoError(t, err)
		mocks.assertExpectations(t)
	})

	t.Run("disallowed emoji stops after tally", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		mocks.starCounts.On("AdjustStarCount", ctx, "guild_1", "user_reactor", 1).
			Return(createTestStarCount(1), nil)
		mocks.guildSettings.On("GetGuildSettings", ctx, "guild_1").
			Return(mo.Some(createTestSettings(3, "feed_1")), nil)

		event := createTestEvent(5)
		event.EmojiName = "🔥"
		err := useCase.ProcessReactionAdd(ctx, event)

		require.NoError(t, err)
		mocks.blockedMessages.AssertNotCalled(t, "IsMessageBlocked", mock.Anything, mock.Anything)
	})

	t.Run("blocked message stops after tally", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		mocks.starCounts.On("AdjustStarCount", ctx, "guild_1", "user_reactor", 1).
			Return(createTestStarCount(1), nil)
		mocks.guildSettings.On("GetGuildSettings", ctx, "guild_1").
			Return(mo.Some(createTestSettings(3, "feed_1")), nil)
		mocks.blockedMessages.On("IsMessageBlocked", ctx, "msg_1").Return(true, nil)

		err := useCase.ProcessReactionAdd(ctx, createTestEvent(5))

		require.NoError(t, err)
		mocks.starredMessages.AssertNotCalled(t, "GetStarredMessage", mock.Anything, mock.Anything)
	})

	t.Run("no feed channel stops before promotion", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		mocks.starCounts.On("AdjustStarCount", ctx, "guild_1", "user_reactor", 1).
			Return(createTestStarCount(1), nil)
		mocks.guildSettings.On("GetGuildSettings", ctx, "guild_1").
			Return(mo.Some(createTestSettings(3, "")), nil)
		mocks.blockedMessages.On("IsMessageBlocked", ctx, "msg_1").Return(false, nil)

		err := useCase.ProcessReactionAdd(ctx, createTestEvent(5))

		require.NoError(t, err)
		mocks.starredMessages.AssertNotCalled(t, "GetStarredMessage", mock.Anything, mock.Anything)
	})

	t.Run("below threshold does not promote", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		mocks.starCounts.On("AdjustStarCount", ctx, "guild_1", "user_reactor", 1).
			Return(createTestStarCount(1), nil)
		mocks.guildSettings.On("GetGuildSettings", ctx, "guild_1").
			Return(mo.Some(createTestSettings(3, "feed_1")), nil)
		mocks.blockedMessages.On("IsMessageBlocked", ctx, "msg_1").Return(false, nil)
		mocks.starredMessages.On("GetStarredMessage", ctx, "msg_1").
			Return(mo.None[*models.StarredMessage](), nil)

		err := useCase.ProcessReactionAdd(ctx, createTestEvent(2))

		require.NoError(t, err)
		mocks.channelSettings.AssertNotCalled(t, "GetChannelSetting", mock.Anything, mock.Anything)
		mocks.discord.AssertNotCalled(t, "SendWebhookMessage", mock.Anything, mock.Anything)
	})

	t.Run("reaching threshold promotes and persists", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		mocks.starCounts.On("AdjustStarCount", ctx, "guild_1", "user_reactor", 1).
			Return(createTestStarCount(1), nil)
		mocks.guildSettings.On("GetGuildSettings", ctx, "guild_1").
			Return(mo.Some(createTestSettings(3, "feed_1")), nil)
		mocks.blockedMessages.On("IsMessageBlocked", ctx, "msg_1").Return(false, nil)
		mocks.starredMessages.On("GetStarredMessage", ctx, "msg_1").
			Return(mo.None[*models.StarredMessage](), nil)
		mocks.channelSettings.On("GetChannelSetting", ctx, "chan_1").
			Return(mo.None[*models.ChannelSetting](), nil)
		mocks.discord.On("IsChannelPubliclyVisible", "chan_1").Return(true, nil)
		expectPublish(mocks, "cp_1")
		mocks.starredMessages.On("CreateStarredMessage", ctx, mock.MatchedBy(func(m *models.StarredMessage) bool {
			return m.MessageID == "msg_1" &&
				m.GuildID == "guild_1" &&
				m.UserID == "user_author" &&
				m.CrosspostID == "cp_1" &&
				m.Count == 3 &&
				len(m.Reactions) == 1 && m.Reactions[0] == "user_reactor"
		})).Return(nil)

		err := useCase.ProcessReactionAdd(ctx, createTestEvent(3))

		require.NoError(t, err)
		mocks.assertExpectations(t)
	})

	t.Run("already promoted refreshes count for new reactor", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		starred := &models.StarredMessage{
			ID:          "sm_1",
			MessageID:   "msg_1",
			GuildID:     "guild_1",
			Count:       3,
			CrosspostID: "cp_1",
			Reactions:   pq.StringArray{"user_other"},
		}

		mocks.starCounts.On("AdjustStarCount", ctx, "guild_1", "user_reactor", 1).
			Return(createTestStarCount(1), nil)
		mocks.guildSettings.On("GetGuildSettings", ctx, "guild_1").
			Return(mo.Some(createTestSettings(3, "feed_1")), nil)
		mocks.blockedMessages.On("IsMessageBlocked", ctx, "msg_1").Return(false, nil)
		mocks.starredMessages.On("GetStarredMessage", ctx, "msg_1").
			Return(mo.Some(starred), nil)
		mocks.starredMessages.On("RefreshStarredMessageCount", ctx, "msg_1", 4, "user_reactor").
			Return(starred, nil)

		err := useCase.ProcessReactionAdd(ctx, createTestEvent(4))

		require.NoError(t, err)
		mocks.discord.AssertNotCalled(t, "SendWebhookMessage", mock.Anything, mock.Anything)
		mocks.assertExpectations(t)
	})

	t.Run("already counted reactor is not recounted", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		starred := &models.StarredMessage{
			ID:          "sm_1",
			MessageID:   "msg_1",
			GuildID:     "guild_1",
			Count:       3,
			CrosspostID: "cp_1",
			Reactions:   pq.StringArray{"user_reactor"},
		}

		mocks.starCounts.On("AdjustStarCount", ctx, "guild_1", "user_reactor", 1).
			Return(createTestStarCount(1), nil)
		mocks.guildSettings.On("GetGuildSettings", ctx, "guild_1").
			Return(mo.Some(createTestSettings(3, "feed_1")), nil)
		mocks.blockedMessages.On("IsMessageBlocked", ctx, "msg_1").Return(false, nil)
		mocks.starredMessages.On("GetStarredMessage", ctx, "msg_1").
			Return(mo.Some(starred), nil)

		err := useCase.ProcessReactionAdd(ctx, createTestEvent(4))

		require.NoError(t, err)
		mocks.starredMessages.AssertNotCalled(t, "RefreshStarredMessageCount",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("channel override hides channel from promotion", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		mocks.starCounts.On("AdjustStarCount", ctx, "guild_1", "user_reactor", 1).
			Return(createTestStarCount(1), nil)
		mocks.guildSettings.On("GetGuildSettings", ctx, "guild_1").
			Return(mo.Some(createTestSettings(3, "feed_1")), nil)
		mocks.blockedMessages.On("IsMessageBlocked", ctx, "msg_1").Return(false, nil)
		mocks.starredMessages.On("GetStarredMessage", ctx, "msg_1").
			Return(mo.None[*models.StarredMessage](), nil)
		mocks.channelSettings.On("GetChannelSetting", ctx, "chan_1").
			Return(mo.Some(&models.ChannelSetting{ID: "cs_1", ChannelID: "chan_1", Visible: false}), nil)

		err := useCase.ProcessReactionAdd(ctx, createTestEvent(3))

		require.NoError(t, err)
		mocks.discord.AssertNotCalled(t, "IsChannelPubliclyVisible", mock.Anything)
		mocks.discord.AssertNotCalled(t, "SendWebhookMessage", mock.Anything, mock.Anything)
	})

	t.Run("visible override skips the permission heuristic", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		mocks.starCounts.On("AdjustStarCount", ctx, "guild_1", "user_reactor", 1).
			Return(createTestStarCount(1), nil)
		mocks.guildSettings.On("GetGuildSettings", ctx, "guild_1").
			Return(mo.Some(createTestSettings(3, "feed_1")), nil)
		mocks.blockedMessages.On("IsMessageBlocked", ctx, "msg_1").Return(false, nil)
		mocks.starredMessages.On("GetStarredMessage", ctx, "msg_1").
			Return(mo.None[*models.StarredMessage](), nil)
		mocks.channelSettings.On("GetChannelSetting", ctx, "chan_1").
			Return(mo.Some(&models.ChannelSetting{ID: "cs_1", ChannelID: "chan_1", Visible: true}), nil)
		expectPublish(mocks, "cp_1")
		mocks.starredMessages.On("CreateStarredMessage", ctx, mock.Anything).Return(nil)

		err := useCase.ProcessReactionAdd(ctx, createTestEvent(3))

		require.NoError(t, err)
		mocks.discord.AssertNotCalled(t, "IsChannelPubliclyVisible", mock.Anything)
		mocks.assertExpectations(t)
	})

	t.Run("publisher failure releases the guard without persisting", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		mocks.starCounts.On("AdjustStarCount", ctx, "guild_1", "user_reactor", 1).
			Return(createTestStarCount(1), nil)
		mocks.guildSettings.On("GetGuildSettings", ctx, "guild_1").
			Return(mo.Some(createTestSettings(3, "feed_1")), nil)
		mocks.blockedMessages.On("IsMessageBlocked", ctx, "msg_1").Return(false, nil)
		mocks.starredMessages.On("GetStarredMessage", ctx, "msg_1").
			Return(mo.None[*models.StarredMessage](), nil)
		mocks.channelSettings.On("GetChannelSetting", ctx, "chan_1").
			Return(mo.None[*models.ChannelSetting](), nil)
		mocks.discord.On("IsChannelPubliclyVisible", "chan_1").Return(true, nil)
		mocks.discord.On("GetMessage", "chan_1", "msg_1").
			Return(nil, fmt.Errorf("message gone")).Once()

		err := useCase.ProcessReactionAdd(ctx, createTestEvent(3))
		require.Error(t, err)
		mocks.starredMessages.AssertNotCalled(t, "CreateStarredMessage", mock.Anything, mock.Anything)

		// The guard must be free again: the next qualifying event promotes.
		expectPublish(mocks, "cp_2")
		mocks.starredMessages.On("CreateStarredMessage", ctx, mock.Anything).Return(nil)

		err = useCase.ProcessReactionAdd(ctx, createTestEvent(3))
		require.NoError(t, err)
		mocks.assertExpectations(t)
	})

	t.Run("losing the insert race is benign", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		mocks.starCounts.On("AdjustStarCount", ctx, "guild_1", "user_reactor", 1).
			Return(createTestStarCount(1), nil)
		mocks.guildSettings.On("GetGuildSettings", ctx, "guild_1").
			Return(mo.Some(createTestSettings(3, "feed_1")), nil)
		mocks.blockedMessages.On("IsMessageBlocked", ctx, "msg_1").Return(false, nil)
		mocks.starredMessages.On("GetStarredMessage", ctx, "msg_1").
			Return(mo.None[*models.StarredMessage](), nil)
		mocks.channelSettings.On("GetChannelSetting", ctx, "chan_1").
			Return(mo.None[*models.ChannelSetting](), nil)
		mocks.discord.On("IsChannelPubliclyVisible", "chan_1").Return(true, nil)
		expectPublish(mocks, "cp_1")
		mocks.starredMessages.On("CreateStarredMessage", ctx, mock.Anything).
			Return(fmt.Errorf("starred message msg_1: %w", core.ErrAlreadyExists))

		err := useCase.ProcessReactionAdd(ctx, createTestEvent(3))

		require.NoError(t, err)
	})

	t.Run("concurrent adds publish exactly once", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		mocks.starCounts.On("AdjustStarCount", ctx, "guild_1", "user_reactor", 1).
			Return(createTestStarCount(1), nil)
		mocks.guildSettings.On("GetGuildSettings", ctx, "guild_1").
			Return(mo.Some(createTestSettings(3, "feed_1")), nil)
		mocks.blockedMessages.On("IsMessageBlocked", ctx, "msg_1").Return(false, nil)
		mocks.starredMessages.On("GetStarredMessage", ctx, "msg_1").
			Return(mo.None[*models.StarredMessage](), nil)
		mocks.channelSettings.On("GetChannelSetting", ctx, "chan_1").
			Return(mo.Some(&models.ChannelSetting{ID: "cs_1", ChannelID: "chan_1", Visible: true}), nil)
		mocks.discord.On("GetMessage", "chan_1", "msg_1").
			Run(func(args mock.Arguments) { time.Sleep(100 * time.Millisecond) }).
			Return(&clients.DiscordMessage{ID: "msg_1", ChannelID: "chan_1", GuildID: "guild_1"}, nil)
		mocks.discord.On("GetChannel", "chan_1").
			Return(&clients.DiscordChannel{ID: "chan_1", Name: "general", IsText: true}, nil)
		mocks.discord.On("EnsureManagedWebhook", "feed_1").
			Return(&clients.DiscordWebhook{ID: "wh_1", Token: "tok", ChannelID: "feed_1"}, nil)
		mocks.discord.On("SendWebhookMessage", mock.Anything, mock.Anything).Return("cp_1", nil)
		mocks.starredMessages.On("CreateStarredMessage", ctx, mock.Anything).Return(nil)

		start := make(chan struct{})
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				_ = useCase.ProcessReactionAdd(ctx, createTestEvent(3))
			}()
		}
		close(start)
		wg.Wait()

		mocks.discord.AssertNumberOfCalls(t, "SendWebhookMessage", 1)
		mocks.starredMessages.AssertNumberOfCalls(t, "CreateStarredMessage", 1)
	})
}

func TestProcessReactionRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("decrements the tally for an allowed emoji", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		mocks.guildSettings.On("GetGuildSettings", ctx, "guild_1").
			Return(mo.Some(createTestSettings(3, "feed_1")), nil)
		mocks.starCounts.On("AdjustStarCount", ctx, "guild_1", "user_reactor", -1).
			Return(createTestStarCount(0), nil)

		err := useCase.ProcessReactionRemove(ctx, createTestEvent(2))

		require.NoError(t, err)
		mocks.assertExpectations(t)
	})

	t.Run("disallowed emoji does not decrement", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		mocks.guildSettings.On("GetGuildSettings", ctx, "guild_1").
			Return(mo.Some(createTestSettings(3, "feed_1")), nil)

		event := createTestEvent(2)
		event.EmojiName = "🔥"
		err := useCase.ProcessReactionRemove(ctx, event)

		require.NoError(t, err)
		mocks.starCounts.AssertNotCalled(t, "AdjustStarCount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unconfigured guild does not decrement", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		mocks.guildSettings.On("GetGuildSettings", ctx, "guild_1").
			Return(mo.None[*models.GuildSetting](), nil)

		err := useCase.ProcessReactionRemove(ctx, createTestEvent(2))

		require.NoError(t, err)
		mocks.starCounts.AssertNotCalled(t, "AdjustStarCount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("never retracts a crosspost", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		mocks.guildSettings.On("GetGuildSettings", ctx, "guild_1").
			Return(mo.Some(createTestSettings(3, "feed_1")), nil)
		mocks.starCounts.On("AdjustStarCount", ctx, "guild_1", "user_reactor", -1).
			Return(createTestStarCount(0), nil)

		err := useCase.ProcessReactionRemove(ctx, createTestEvent(0))

		require.NoError(t, err)
		mocks.starredMessages.AssertNotCalled(t, "DeleteStarredMessage", mock.Anything, mock.Anything)
		mocks.discord.AssertNotCalled(t, "DeleteMessage", mock.Anything, mock.Anything)
	})

	t.Run("self-star removal is ignored", func(t *testing.T) {
		useCase, mocks := setupEngineTest()

		event := createTestEvent(2)
		event.UserID = event.AuthorID

		err := useCase.ProcessReactionRemove(ctx, event)

		require.NoError(t, err)
		mocks.starCounts.AssertNotCalled(t, "AdjustStarCount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestNewStarUseCase(t *testing.T) {
	useCase, mocks := setupEngineTest()

	assert.NotNil(t, useCase)
	assert.Equal(t, mocks.discord, useCase.discordClient)
	assert.NotNil(t, useCase.guard)
}
