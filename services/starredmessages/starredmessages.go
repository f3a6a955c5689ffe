package starredmessages

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"

	"starboard/core"
	"starboard/db"
	"starboard/models"
	"starboard/utils"
)

type StarredMessagesService struct {
	starredMessagesRepo *db.PostgresStarredMessagesRepository
}

func NewStarredMessagesService(repo *db.PostgresStarredMessagesRepository) *StarredMessagesService {
	return &StarredMessagesService{starredMessagesRepo: repo}
}

// CreateStarredMessage persists the promotion record. The caller must have set
// the crosspost ID already; a second create for the same source message
// returns core.ErrAlreadyExists.
func (s *StarredMessagesService) CreateStarredMessage(
	ctx context.Context,
	message *models.StarredMessage,
) error {
	log.Printf("📋 Starting to create starred message record for message: %s", message.MessageID)
	if message.MessageID == "" {
		return fmt.Errorf("message ID cannot be empty")
	}
	if message.GuildID == "" {
		return fmt.Errorf("guild ID cannot be empty")
	}
	utils.AssertInvariant(message.CrosspostID != "", "starred message must reference its crosspost")

	if message.ID == "" {
		message.ID = core.NewID(core.IDPrefixStarredMessage)
	}

	if err := s.starredMessagesRepo.CreateStarredMessage(ctx, message); err != nil {
		return fmt.Errorf("failed to create starred message: %w", err)
	}

	log.Printf("📋 Completed successfully - created starred message record for message: %s", message.MessageID)
	return nil
}

func (s *StarredMessagesService) GetStarredMessage(
	ctx context.Context,
	messageID string,
) (mo.Option[*models.StarredMessage], error) {
	log.Printf("📋 Starting to get starred message record for message: %s", messageID)
	if messageID == "" {
		return mo.None[*models.StarredMessage](), fmt.Errorf("message ID cannot be empty")
	}

	maybeMessage, err := s.starredMessagesRepo.GetStarredMessage(ctx, messageID)
	if err != nil {
		return mo.None[*models.StarredMessage](), fmt.Errorf("failed to get starred message: %w", err)
	}

	log.Printf("📋 Completed successfully - retrieved starred message record for message: %s", messageID)
	return maybeMessage, nil
}

// RefreshStarredMessageCount records a later reaction on an already promoted
// message, updating the tracked count and remembering the reactor.
func (s *StarredMessagesService) RefreshStarredMessageCount(
	ctx context.Context,
	messageID string,
	count int,
	reactorID string,
) (*models.StarredMessage, error) {
	log.Printf("📋 Starting to refresh starred message count to %d for message: %s", count, messageID)
	if messageID == "" {
		return nil, fmt.Errorf("message ID cannot be empty")
	}
	if reactorID == "" {
		return nil, fmt.Errorf("reactor ID cannot be empty")
	}

	message, err := s.starredMessagesRepo.RefreshStarredMessageCount(ctx, messageID, count, reactorID)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh starred message count: %w", err)
	}

	log.Printf("📋 Completed successfully - refreshed starred message count for message: %s", messageID)
	return message, nil
}

// DeleteStarredMessage drops the promotion record. Returns false when the
// message was never promoted.
func (s *StarredMessagesService) DeleteStarredMessage(ctx context.Context, messageID string) (bool, error) {
	log.Printf("📋 Starting to delete starred message record for message: %s", messageID)
	if messageID == "" {
		return false, fmt.Errorf("message ID cannot be empty")
	}

	deleted, err := s.starredMessagesRepo.DeleteStarredMessage(ctx, messageID)
	if err != nil {
		return false, fmt.Errorf("failed to delete starred message: %w", err)
	}

	log.Printf("📋 Completed successfully - deleted starred message record for message: %s (existed: %t)", messageID, deleted)
	return deleted, nil
}

func (s *StarredMessagesService) GetTopMessageAuthors(
	ctx context.Context,
	guildID string,
	limit int,
) ([]*models.MessageAuthorStat, error) {
	log.Printf("📋 Starting to get top %d message authors for guild: %s", limit, guildID)
	if guildID == "" {
		return nil, fmt.Errorf("guild ID cannot be empty")
	}
	if limit < 1 {
		return nil, fmt.Errorf("limit must be at least 1, got %d", limit)
	}

	stats, err := s.starredMessagesRepo.GetTopMessageAuthors(ctx, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top message authors: %w", err)
	}

	log.Printf("📋 Completed successfully - retrieved %d top message authors for guild: %s", len(stats), guildID)
	return stats, nil
}
