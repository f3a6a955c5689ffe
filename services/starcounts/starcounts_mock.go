package starcounts

import (
	"context"

	"github.com/stretchr/testify/mock"

	"starboard/models"
)

type MockStarCountsService struct {
	mock.Mock
}

func (m *MockStarCountsService) AdjustStarCount(
	ctx context.Context,
	guildID, userID string,
	delta int,
) (*models.StarCount, error) {
	args := m.Called(ctx, guildID, userID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StarCount), args.Error(1)
}

func (m *MockStarCountsService) GetTopStarGivers(
	ctx context.Context,
	guildID string,
	limit int,
) ([]*models.StarCount, error) {
	args := m.Called(ctx, guildID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StarCount), args.Error(1)
}
