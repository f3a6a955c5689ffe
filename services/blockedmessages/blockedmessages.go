package blockedmessages

import (
	"context"
	"fmt"
	"log"

	"starboard/db"
)

type BlockedMessagesService struct {
	blockedMessagesRepo *db.PostgresBlockedMessagesRepository
}

func NewBlockedMessagesService(repo *db.PostgresBlockedMessagesRepository) *BlockedMessagesService {
	return &BlockedMessagesService{blockedMessagesRepo: repo}
}

func (s *BlockedMessagesService) IsMessageBlocked(ctx context.Context, messageID string) (bool, error) {
	log.Printf("📋 Starting to check block status for message: %s", messageID)
	if messageID == "" {
		return false, fmt.Errorf("message ID cannot be empty")
	}

	maybeBlocked, err := s.blockedMessagesRepo.GetBlockedMessage(ctx, messageID)
	if err != nil {
		return false, fmt.Errorf("failed to check block status: %w", err)
	}

	blocked := maybeBlocked.IsPresent()
	log.Printf("📋 Completed successfully - message %s blocked: %t", messageID, blocked)
	return blocked, nil
}

// BlockMessage adds the message to the ignore ledger. Blocking an already
// blocked message is a no-op; the return value reports whether the message was
// already blocked.
func (s *BlockedMessagesService) BlockMessage(ctx context.Context, messageID string) (bool, error) {
	log.Printf("📋 Starting to block message: %s", messageID)
	if messageID == "" {
		return false, fmt.Errorf("message ID cannot be empty")
	}

	inserted, err := s.blockedMessagesRepo.CreateBlockedMessage(ctx, messageID)
	if err != nil {
		return false, fmt.Errorf("failed to block message: %w", err)
	}

	alreadyBlocked := !inserted
	if alreadyBlocked {
		log.Printf("📋 Completed successfully - message %s was already blocked", messageID)
	} else {
		log.Printf("📋 Completed successfully - blocked message: %s", messageID)
	}
	return alreadyBlocked, nil
}

// UnblockMessage removes the message from the ignore ledger. Returns whether
// the message had been blocked.
func (s *BlockedMessagesService) UnblockMessage(ctx context.Context, messageID string) (bool, error) {
	log.Printf("📋 Starting to unblock message: %s", messageID)
	if messageID == "" {
		return false, fmt.Errorf("message ID cannot be empty")
	}

	wasBlocked, err := s.blockedMessagesRepo.DeleteBlockedMessage(ctx, messageID)
	if err != nil {
		return false, fmt.Errorf("failed to unblock message: %w", err)
	}

	log.Printf("📋 Completed successfully - unblocked message: %s (was blocked: %t)", messageID, wasBlocked)
	return wasBlocked, nil
}
