package star

import (
	"starboard/clients"
	"starboard/services"
)

// StarUseCase drives the reaction-to-promotion pipeline: tallying reactions,
// deciding when a message crosses its guild's threshold, publishing the
// crosspost and recording the promotion.
type StarUseCase struct {
	discordClient          clients.DiscordClient
	guildSettingsService   services.GuildSettingsService
	channelSettingsService services.ChannelSettingsService
	starCountsService      services.StarCountsService
	starredMessagesService services.StarredMessagesService
	blockedMessagesService services.BlockedMessagesService
	txManager              services.TransactionManager
	guard                  *promotionGuard
	// ignoreEmojiID, when configured, is the reaction the bot leaves on
	// messages a moderator ignores. Empty disables the marker.
	ignoreEmojiID string
}

// NewStarUseCase creates a new instance of StarUseCase
func NewStarUseCase(
	discordClient clients.DiscordClient,
	guildSettingsService services.GuildSettingsService,
	channelSettingsService services.ChannelSettingsService,
	starCountsService services.StarCountsService,
	starredMessagesService services.StarredMessagesService,
	blockedMessagesService services.BlockedMessagesService,
	txManager services.TransactionManager,
	ignoreEmojiID string,
) *StarUseCase {
	return &StarUseCase{
		discordClient:          discordClient,
		guildSettingsService:   guildSettingsService,
		channelSettingsService: channelSettingsService,
		starCountsService:      starCountsService,
		starredMessagesService: starredMessagesService,
		blockedMessagesService: blockedMessagesService,
		txManager:              txManager,
		guard:                  newPromotionGuard(),
		ignoreEmojiID:          ignoreEmojiID,
	}
}
