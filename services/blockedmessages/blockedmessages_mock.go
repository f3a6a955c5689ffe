package blockedmessages

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockBlockedMessagesService struct {
	mock.Mock
}

func (m *MockBlockedMessagesService) IsMessageBlocked(ctx context.Context, messageID string) (bool, error) {
	args := m.Called(ctx, messageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlockedMessagesService) BlockMessage(ctx context.Context, messageID string) (bool, error) {
	args := m.Called(ctx, messageID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlockedMessagesService) UnblockMessage(ctx context.Context, messageID string) (bool, error) {
	args := m.Called(ctx, messageID)
	return args.Bool(0), args.Error(1)
}
