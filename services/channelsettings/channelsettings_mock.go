package channelsettings

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"starboard/models"
)

type MockChannelSettingsService struct {
	mock.Mock
}

func (m *MockChannelSettingsService) GetChannelSetting(
	ctx context.Context,
	channelID string,
) (mo.Option[*models.ChannelSetting], error) {
	args := m.Called(ctx, channelID)
	return args.Get(0).(mo.Option[*models.ChannelSetting]), args.Error(1)
}

func (m *MockChannelSettingsService) SetChannelVisibility(
	ctx context.Context,
	guildID, channelID string,
	visible bool,
) (*models.ChannelSetting, error) {
	args := m.Called(ctx, guildID, channelID, visible)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChannelSetting), args.Error(1)
}

func (m *MockChannelSettingsService) ResetChannel(ctx context.Context, channelID string) (bool, error) {
	args := m.Called(ctx, channelID)
	return args.Bool(0), args.Error(1)
}

func (m *MockChannelSettingsService) ListGuildChannelSettings(
	ctx context.Context,
	guildID string,
) ([]*models.ChannelSetting, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ChannelSetting), args.Error(1)
}
