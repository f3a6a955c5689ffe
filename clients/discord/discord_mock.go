package discord

import (
	"github.com/stretchr/testify/mock"

	"starboard/clients"
)

type MockDiscordClient struct {
	mock.Mock
}

func (m *MockDiscordClient) GetBotUser() (*clients.DiscordUser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordUser), args.Error(1)
}

func (m *MockDiscordClient) GetMessage(channelID, messageID string) (*clients.DiscordMessage, error) {
	args := m.Called(channelID, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordMessage), args.Error(1)
}

func (m *MockDiscordClient) DeleteMessage(channelID, messageID string) error {
	args := m.Called(channelID, messageID)
	return args.Error(0)
}

func (m *MockDiscordClient) GetChannel(channelID string) (*clients.DiscordChannel, error) {
	args := m.Called(channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordChannel), args.Error(1)
}

func (m *MockDiscordClient) IsChannelPubliclyVisible(channelID string) (bool, error) {
	args := m.Called(channelID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDiscordClient) EnsureManagedWebhook(channelID string) (*clients.DiscordWebhook, error) {
	args := m.Called(channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordWebhook), args.Error(1)
}

func (m *MockDiscordClient) SendWebhookMessage(
	webhook *clients.DiscordWebhook,
	params clients.WebhookMessageParams,
) (string, error) {
	args := m.Called(webhook, params)
	return args.String(0), args.Error(1)
}

func (m *MockDiscordClient) IsOwnWebhook(webhookID string) (bool, error) {
	args := m.Called(webhookID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDiscordClient) AddReaction(channelID, messageID, emojiID string) error {
	args := m.Called(channelID, messageID, emojiID)
	return args.Error(0)
}

func (m *MockDiscordClient) RemoveOwnReaction(channelID, messageID, emojiID string) error {
	args := m.Called(channelID, messageID, emojiID)
	return args.Error(0)
}
