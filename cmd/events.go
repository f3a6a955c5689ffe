package main

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"

	"starboard/clients"
	"starboard/models"
	"starboard/usecases/star"
)

// reactionDispatcher turns raw gateway reaction events into normalized events
// for the promotion engine. Each handler runs in its own goroutine, so slow
// storage or publishing never blocks gateway delivery.
type reactionDispatcher struct {
	starUseCase   *star.StarUseCase
	discordClient clients.DiscordClient
}

func newReactionDispatcher(starUseCase *star.StarUseCase, discordClient clients.DiscordClient) *reactionDispatcher {
	return &reactionDispatcher{
		starUseCase:   starUseCase,
		discordClient: discordClient,
	}
}

func (d *reactionDispatcher) handleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.GuildID == "" || r.UserID == s.State.User.ID {
		return
	}

	event, ok := d.normalizeReaction(r.GuildID, r.ChannelID, r.MessageID, r.UserID, r.Emoji)
	if !ok {
		return
	}

	if err := d.starUseCase.ProcessReactionAdd(context.Background(), event); err != nil {
		log.Printf("❌ Failed to process reaction add on message %s: %v", r.MessageID, err)
	}
}

func (d *reactionDispatcher) handleReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	if r.GuildID == "" || r.UserID == s.State.User.ID {
		return
	}

	event, ok := d.normalizeReaction(r.GuildID, r.ChannelID, r.MessageID, r.UserID, r.Emoji)
	if !ok {
		return
	}

	if err := d.starUseCase.ProcessReactionRemove(context.Background(), event); err != nil {
		log.Printf("❌ Failed to process reaction remove on message %s: %v", r.MessageID, err)
	}
}

// normalizeReaction fetches the reacted message and builds the engine event.
// The fetch resolves the message author, the current per-emoji reaction count
// and whether the message came out of the bot's own crosspost webhook.
func (d *reactionDispatcher) normalizeReaction(
	guildID, channelID, messageID, userID string,
	emoji discordgo.Emoji,
) (models.ReactionEvent, bool) {
	message, err := d.discordClient.GetMessage(channelID, messageID)
	if err != nil {
		log.Printf("❌ Failed to fetch reacted message %s: %v", messageID, err)
		return models.ReactionEvent{}, false
	}

	fromOwnWebhook := false
	if message.WebhookID != "" {
		fromOwnWebhook, err = d.discordClient.IsOwnWebhook(message.WebhookID)
		if err != nil {
			log.Printf("⚠️ Failed to resolve webhook %s, treating message as foreign: %v", message.WebhookID, err)
			fromOwnWebhook = false
		}
	}

	return models.ReactionEvent{
		GuildID:        guildID,
		ChannelID:      channelID,
		MessageID:      messageID,
		UserID:         userID,
		AuthorID:       message.AuthorID,
		EmojiID:        emoji.ID,
		EmojiName:      emoji.Name,
		Count:          message.ReactionCount(emoji.ID, emoji.Name),
		FromOwnWebhook: fromOwnWebhook,
	}, true
}
