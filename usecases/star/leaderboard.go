package star

import (
	"context"
	"fmt"
	"log"

	"starboard/models"
)

// leaderboardSize is how many entries each leaderboard section carries.
const leaderboardSize = 10

// Leaderboard summarizes a guild's starboard activity.
type Leaderboard struct {
	// TopAuthors ranks users by how many of their messages got promoted.
	TopAuthors []*models.MessageAuthorStat
	// TopGivers ranks users by their star tally.
	TopGivers []*models.StarCount
}

func (u *StarUseCase) GetLeaderboard(ctx context.Context, guildID string) (*Leaderboard, error) {
	log.Printf("📋 Starting to build leaderboard for guild: %s", guildID)

	authors, err := u.starredMessagesService.GetTopMessageAuthors(ctx, guildID, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get top message authors: %w", err)
	}

	givers, err := u.starCountsService.GetTopStarGivers(ctx, guildID, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get top star givers: %w", err)
	}

	log.Printf("📋 Completed successfully - leaderboard for guild %s has %d authors and %d givers",
		guildID, len(authors), len(givers))
	return &Leaderboard{TopAuthors: authors, TopGivers: givers}, nil
}
