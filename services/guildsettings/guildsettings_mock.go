package guildsettings

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"starboard/models"
)

type MockGuildSettingsService struct {
	mock.Mock
}

func (m *MockGuildSettingsService) GetGuildSettings(
	ctx context.Context,
	guildID string,
) (mo.Option[*models.GuildSetting], error) {
	args := m.Called(ctx, guildID)
	return args.Get(0).(mo.Option[*models.GuildSetting]), args.Error(1)
}

func (m *MockGuildSettingsService) SetThreshold(
	ctx context.Context,
	guildID string,
	amount int,
) (*models.GuildSetting, error) {
	args := m.Called(ctx, guildID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildSetting), args.Error(1)
}

func (m *MockGuildSettingsService) SetFeedChannel(
	ctx context.Context,
	guildID, channelID string,
) (*models.GuildSetting, error) {
	args := m.Called(ctx, guildID, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildSetting), args.Error(1)
}

func (m *MockGuildSettingsService) AddEmoji(
	ctx context.Context,
	guildID, emoji string,
) (*models.GuildSetting, error) {
	args := m.Called(ctx, guildID, emoji)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildSetting), args.Error(1)
}

func (m *MockGuildSettingsService) RemoveEmoji(
	ctx context.Context,
	guildID, emoji string,
) (*models.GuildSetting, error) {
	args := m.Called(ctx, guildID, emoji)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildSetting), args.Error(1)
}
