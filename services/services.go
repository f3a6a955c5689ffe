package services

import (
	"context"

	"github.com/samber/mo"

	"starboard/models"
)

// GuildSettingsService defines the interface for guild starboard configuration
type GuildSettingsService interface {
	GetGuildSettings(ctx context.Context, guildID string) (mo.Option[*models.GuildSetting], error)
	SetThreshold(ctx context.Context, guildID string, amount int) (*models.GuildSetting, error)
	SetFeedChannel(ctx context.Context, guildID, channelID string) (*models.GuildSetting, error)
	AddEmoji(ctx context.Context, guildID, emoji string) (*models.GuildSetting, error)
	RemoveEmoji(ctx context.Context, guildID, emoji string) (*models.GuildSetting, error)
}

// ChannelSettingsService defines the interface for per-channel visibility overrides
type ChannelSettingsService interface {
	GetChannelSetting(ctx context.Context, channelID string) (mo.Option[*models.ChannelSetting], error)
	SetChannelVisibility(
		ctx context.Context,
		guildID, channelID string,
		visible bool,
	) (*models.ChannelSetting, error)
	ResetChannel(ctx context.Context, channelID string) (bool, error)
	ListGuildChannelSettings(ctx context.Context, guildID string) ([]*models.ChannelSetting, error)
}

// StarCountsService defines the interface for the per-user reaction tally
type StarCountsService interface {
	AdjustStarCount(ctx context.Context, guildID, userID string, delta int) (*models.StarCount, error)
	GetTopStarGivers(ctx context.Context, guildID string, limit int) ([]*models.StarCount, error)
}

// StarredMessagesService defines the interface for promotion records
type StarredMessagesService interface {
	CreateStarredMessage(ctx context.Context, message *models.StarredMessage) error
	GetStarredMessage(ctx context.Context, messageID string) (mo.Option[*models.StarredMessage], error)
	RefreshStarredMessageCount(
		ctx context.Context,
		messageID string,
		count int,
		reactorID string,
	) (*models.StarredMessage, error)
	DeleteStarredMessage(ctx context.Context, messageID string) (bool, error)
	GetTopMessageAuthors(ctx context.Context, guildID string, limit int) ([]*models.MessageAuthorStat, error)
}

// BlockedMessagesService defines the interface for the ignore ledger
type BlockedMessagesService interface {
	IsMessageBlocked(ctx context.Context, messageID string) (bool, error)
	BlockMessage(ctx context.Context, messageID string) (alreadyBlocked bool, err error)
	UnblockMessage(ctx context.Context, messageID string) (wasBlocked bool, err error)
}

// TransactionManager defines the interface for transaction management
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
