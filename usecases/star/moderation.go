package star

import (
	"context"
	"fmt"
	"log"

	"starboard/models"
)

// IgnoreMessage blocks the message from promotion. The returned flag reports
// whether a crosspost already exists; retraction is left to the moderator via
// DeleteCrosspost.
func (u *StarUseCase) IgnoreMessage(ctx context.Context, channelID, messageID string) (bool, error) {
	log.Printf("📋 Starting to ignore message: %s", messageID)

	var crosspostExists bool
	err := u.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		alreadyBlocked, err := u.blockedMessagesService.BlockMessage(ctx, messageID)
		if err != nil {
			return fmt.Errorf("failed to block message: %w", err)
		}
		if alreadyBlocked {
			log.Printf("⚠️ Message %s was already ignored", messageID)
		}

		maybeStarred, err := u.starredMessagesService.GetStarredMessage(ctx, messageID)
		if err != nil {
			return fmt.Errorf("failed to check for existing crosspost: %w", err)
		}
		crosspostExists = maybeStarred.IsPresent()
		return nil
	})
	if err != nil {
		log.Printf("❌ Failed to ignore message %s: %v", messageID, err)
		return false, err
	}

	if u.ignoreEmojiID != "" {
		if err := u.discordClient.AddReaction(channelID, messageID, u.ignoreEmojiID); err != nil {
			// The block is already persisted; a missing marker reaction is not
			// worth failing the operation over.
			log.Printf("⚠️ Failed to add ignore marker to message %s: %v", messageID, err)
		}
	}

	log.Printf("📋 Completed successfully - ignored message %s (crosspost exists: %t)", messageID, crosspostExists)
	return crosspostExists, nil
}

// UnignoreMessage lifts the block. Returns whether the message had been
// blocked at all.
func (u *StarUseCase) UnignoreMessage(ctx context.Context, channelID, messageID string) (bool, error) {
	log.Printf("📋 Starting to unignore message: %s", messageID)

	wasBlocked, err := u.blockedMessagesService.UnblockMessage(ctx, messageID)
	if err != nil {
		log.Printf("❌ Failed to unignore message %s: %v", messageID, err)
		return false, fmt.Errorf("failed to unignore message: %w", err)
	}

	if u.ignoreEmojiID != "" && wasBlocked {
		if err := u.discordClient.RemoveOwnReaction(channelID, messageID, u.ignoreEmojiID); err != nil {
			log.Printf("⚠️ Failed to remove ignore marker from message %s: %v", messageID, err)
		}
	}

	log.Printf("📋 Completed successfully - unignored message %s (was blocked: %t)", messageID, wasBlocked)
	return wasBlocked, nil
}

// DeleteCrosspost retracts a promotion: the published post is deleted from the
// feed channel, then the promotion record is dropped so the source message can
// be promoted again. A record-deletion failure after the platform delete is
// logged but not fatal.
func (u *StarUseCase) DeleteCrosspost(ctx context.Context, messageID string) error {
	log.Printf("📋 Starting to delete crosspost for message: %s", messageID)

	maybeStarred, err := u.starredMessagesService.GetStarredMessage(ctx, messageID)
	if err != nil {
		return fmt.Errorf("failed to get starred message record: %w", err)
	}
	starred, ok := maybeStarred.Get()
	if !ok {
		return fmt.Errorf("message %s has no crosspost", messageID)
	}

	feedChannelID, err := u.feedChannelFor(ctx, starred)
	if err != nil {
		return err
	}

	if err := u.discordClient.DeleteMessage(feedChannelID, starred.CrosspostID); err != nil {
		log.Printf("❌ Failed to delete crosspost %s: %v", starred.CrosspostID, err)
		return fmt.Errorf("failed to delete crosspost: %w", err)
	}

	if _, err := u.starredMessagesService.DeleteStarredMessage(ctx, messageID); err != nil {
		log.Printf("⚠️ Crosspost deleted but record removal failed for message %s: %v", messageID, err)
		return nil
	}

	log.Printf("📋 Completed successfully - deleted crosspost for message: %s", messageID)
	return nil
}

func (u *StarUseCase) feedChannelFor(ctx context.Context, starred *models.StarredMessage) (string, error) {
	maybeSettings, err := u.guildSettingsService.GetGuildSettings(ctx, starred.GuildID)
	if err != nil {
		return "", fmt.Errorf("failed to get guild settings: %w", err)
	}
	settings, ok := maybeSettings.Get()
	if !ok || !settings.PromotionEnabled() {
		return "", fmt.Errorf("guild %s has no feed channel configured", starred.GuildID)
	}
	return *settings.FeedChannelID, nil
}
