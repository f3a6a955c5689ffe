package starredmessages

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"starboard/models"
)

type MockStarredMessagesService struct {
	mock.Mock
}

func (m *MockStarredMessagesService) CreateStarredMessage(
	ctx context.Context,
	message *models.StarredMessage,
) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockStarredMessagesService) GetStarredMessage(
	ctx context.Context,
	messageID string,
) (mo.Option[*models.StarredMessage], error) {
	args := m.Called(ctx, messageID)
	return args.Get(0).(mo.Option[*models.StarredMessage]), args.Error(1)
}

func (m *MockStarredMessagesService) RefreshStarredMessageCount(
	ctx context.Context,
	messageID string,
	count int,
	reactorID string,
) (*models.StarredMessage, error) {
	args := m.Called(ctx, messageID, count, reactorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StarredMessage), args.Error(1)
}

func (m *MockStarredMessagesService) DeleteStarredMessage(
	ctx context.Context,
	messageID string,
) (bool, error) {
	args := m.Called(ctx, messageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStarredMessagesService) GetTopMessageAuthors(
	ctx context.Context,
	guildID string,
	limit int,
) ([]*models.MessageAuthorStat, error) {
	args := m.Called(ctx, guildID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MessageAuthorStat), args.Error(1)
}
