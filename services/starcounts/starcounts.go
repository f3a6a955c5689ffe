package starcounts

import (
	"context"
	"fmt"
	"log"

	"starboard/db"
	"starboard/models"
)

type StarCountsService struct {
	starCountsRepo *db.PostgresStarCountsRepository
}

func NewStarCountsService(repo *db.PostgresStarCountsRepository) *StarCountsService {
	return &StarCountsService{starCountsRepo: repo}
}

// AdjustStarCount applies a delta to the user's tally in the guild. The tally
// counts every observed add and remove event rather than distinct reactors, so
// repeated add/remove cycles keep incrementing and decrementing it.
func (s *StarCountsService) AdjustStarCount(
	ctx context.Context,
	guildID, userID string,
	delta int,
) (*models.StarCount, error) {
	log.Printf("📋 Starting to adjust star count by %d for user %s in guild: %s", delta, userID, guildID)
	if guildID == "" {
		return nil, fmt.Errorf("guild ID cannot be empty")
	}
	if userID == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}

	count, err := s.starCountsRepo.AdjustStarCount(ctx, guildID, userID, delta)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust star count: %w", err)
	}

	log.Printf("📋 Completed successfully - star count for user %s is now %d", userID, count.Amount)
	return count, nil
}

func (s *StarCountsService) GetTopStarGivers(
	ctx context.Context,
	guildID string,
	limit int,
) ([]*models.StarCount, error) {
	log.Printf("📋 Starting to get top %d star givers for guild: %s", limit, guildID)
	if guildID == "" {
		return nil, fmt.Errorf("guild ID cannot be empty")
	}
	if limit < 1 {
		return nil, fmt.Errorf("limit must be at least 1, got %d", limit)
	}

	counts, err := s.starCountsRepo.GetTopStarGivers(ctx, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top star givers: %w", err)
	}

	log.Printf("📋 Completed successfully - retrieved %d top star givers for guild: %s", len(counts), guildID)
	return counts, nil
}
