package star

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/lib/pq"

	"starboard/core"
	"starboard/models"
)

// ProcessReactionAdd runs the promotion state machine for one reaction-add
// event. The tally always advances; everything after it only runs when the
// guild's configuration and the message's state allow a promotion.
func (u *StarUseCase) ProcessReactionAdd(ctx context.Context, event models.ReactionEvent) error {
	log.Printf("📋 Starting to process reaction add from user %s on message %s in guild %s",
		event.UserID, event.MessageID, event.GuildID)

	if event.FromOwnWebhook {
		log.Printf("⏭️ Ignoring reaction on own crosspost %s - feedback loop", event.MessageID)
		return nil
	}
	if event.UserID == event.AuthorID {
		log.Printf("⏭️ Ignoring self-star from user %s on message %s", event.UserID, event.MessageID)
		return nil
	}

	if _, err := u.starCountsService.AdjustStarCount(ctx, event.GuildID, event.UserID, 1); err != nil {
		log.Printf("❌ Failed to adjust star count: %v", err)
		return fmt.Errorf("failed to adjust star count: %w", err)
	}

	maybeSettings, err := u.guildSettingsService.GetGuildSettings(ctx, event.GuildID)
	if err != nil {
		log.Printf("❌ Failed to get guild settings: %v", err)
		return fmt.Errorf("failed to get guild settings: %w", err)
	}
	if !maybeSettings.IsPresent() {
		log.Printf("⏭️ Guild %s has no starboard configuration - tally only", event.GuildID)
		return nil
	}
	settings := maybeSettings.MustGet()

	if !settings.AllowsEmoji(event.EmojiID, event.EmojiName) {
		log.Printf("⏭️ Emoji %s/%s is not allowed in guild %s - tally only",
			event.EmojiID, event.EmojiName, event.GuildID)
		return nil
	}

	blocked, err := u.blockedMessagesService.IsMessageBlocked(ctx, event.MessageID)
	if err != nil {
		log.Printf("❌ Failed to check block status: %v", err)
		return fmt.Errorf("failed to check block status: %w", err)
	}
	if blocked {
		log.Printf("⏭️ Message %s is blocked - tally only", event.MessageID)
		return nil
	}

	if !settings.PromotionEnabled() {
		log.Printf("⏭️ Guild %s has no feed channel configured - tally only", event.GuildID)
		return nil
	}

	maybeStarred, err := u.starredMessagesService.GetStarredMessage(ctx, event.MessageID)
	if err != nil {
		log.Printf("❌ Failed to get starred message record: %v", err)
		return fmt.Errorf("failed to get starred message record: %w", err)
	}
	if starred, ok := maybeStarred.Get(); ok {
		// Already promoted; no second crosspost, just keep the record fresh.
		if starred.HasReactionFrom(event.UserID) {
			log.Printf("⏭️ User %s already counted on promoted message %s", event.UserID, event.MessageID)
			return nil
		}
		if _, err := u.starredMessagesService.RefreshStarredMessageCount(
			ctx, event.MessageID, event.Count, event.UserID,
		); err != nil {
			log.Printf("❌ Failed to refresh starred message count: %v", err)
			return fmt.Errorf("failed to refresh starred message count: %w", err)
		}
		log.Printf("✅ Refreshed count to %d on promoted message %s", event.Count, event.MessageID)
		return nil
	}

	if event.Count < settings.Amount {
		log.Printf("⏭️ Message %s at %d/%d reactions - below threshold", event.MessageID, event.Count, settings.Amount)
		return nil
	}

	eligible, err := u.isChannelEligible(ctx, event.ChannelID)
	if err != nil {
		log.Printf("❌ Failed to resolve channel eligibility: %v", err)
		return fmt.Errorf("failed to resolve channel eligibility: %w", err)
	}
	if !eligible {
		log.Printf("⏭️ Channel %s is not eligible for promotion", event.ChannelID)
		return nil
	}

	if !u.guard.TryAcquire(event.MessageID) {
		log.Printf("⏭️ Promotion of message %s already in flight", event.MessageID)
		return nil
	}
	defer u.guard.Release(event.MessageID)

	crosspostID, err := u.publishCrosspost(ctx, *settings.FeedChannelID, event)
	if err != nil {
		log.Printf("❌ Failed to publish crosspost for message %s: %v", event.MessageID, err)
		return fmt.Errorf("failed to publish crosspost: %w", err)
	}

	record := &models.StarredMessage{
		ID:          core.NewID(core.IDPrefixStarredMessage),
		MessageID:   event.MessageID,
		ChannelID:   event.ChannelID,
		GuildID:     event.GuildID,
		UserID:      event.AuthorID,
		Count:       event.Count,
		CrosspostID: crosspostID,
		Reactions:   pq.StringArray{event.UserID},
	}
	if err := u.starredMessagesService.CreateStarredMessage(ctx, record); err != nil {
		if errors.Is(err, core.ErrAlreadyExists) {
			log.Printf("⚠️ Message %s was promoted concurrently by another process", event.MessageID)
			return nil
		}
		log.Printf("❌ Failed to persist starred message record: %v", err)
		return fmt.Errorf("failed to persist starred message record: %w", err)
	}

	log.Printf("📋 Completed successfully - promoted message %s as crosspost %s", event.MessageID, crosspostID)
	return nil
}

// ProcessReactionRemove decrements the reactor's tally. Only removals that
// would have counted on the add path count here: the emoji must be in the
// guild's allowed set. Promotion is one-way: a removed reaction never retracts
// a crosspost.
func (u *StarUseCase) ProcessReactionRemove(ctx context.Context, event models.ReactionEvent) error {
	log.Printf("📋 Starting to process reaction remove from user %s on message %s in guild %s",
		event.UserID, event.MessageID, event.GuildID)

	if event.FromOwnWebhook {
		log.Printf("⏭️ Ignoring reaction removal on own crosspost %s - feedback loop", event.MessageID)
		return nil
	}
	if event.UserID == event.AuthorID {
		log.Printf("⏭️ Ignoring self-star removal from user %s on message %s", event.UserID, event.MessageID)
		return nil
	}

	maybeSettings, err := u.guildSettingsService.GetGuildSettings(ctx, event.GuildID)
	if err != nil {
		log.Printf("❌ Failed to get guild settings: %v", err)
		return fmt.Errorf("failed to get guild settings: %w", err)
	}
	if !maybeSettings.IsPresent() {
		log.Printf("⏭️ Guild %s has no starboard configuration - nothing to decrement", event.GuildID)
		return nil
	}
	settings := maybeSettings.MustGet()

	if !settings.AllowsEmoji(event.EmojiID, event.EmojiName) {
		log.Printf("⏭️ Emoji %s/%s is not allowed in guild %s - nothing to decrement",
			event.EmojiID, event.EmojiName, event.GuildID)
		return nil
	}

	if _, err := u.starCountsService.AdjustStarCount(ctx, event.GuildID, event.UserID, -1); err != nil {
		log.Printf("❌ Failed to adjust star count: %v", err)
		return fmt.Errorf("failed to adjust star count: %w", err)
	}

	log.Printf("📋 Completed successfully - processed reaction remove on message %s", event.MessageID)
	return nil
}

// isChannelEligible applies the per-channel override when one exists and falls
// back to the public-channel heuristic otherwise.
func (u *StarUseCase) isChannelEligible(ctx context.Context, channelID string) (bool, error) {
	maybeSetting, err := u.channelSettingsService.GetChannelSetting(ctx, channelID)
	if err != nil {
		return false, fmt.Errorf("failed to get channel setting: %w", err)
	}
	if setting, ok := maybeSetting.Get(); ok {
		return setting.Visible, nil
	}

	visible, err := u.discordClient.IsChannelPubliclyVisible(channelID)
	if err != nil {
		return false, fmt.Errorf("failed to check channel visibility: %w", err)
	}
	return visible, nil
}
