package clients

import "github.com/bwmarrin/discordgo"

// DiscordUser is the subset of user state the engine needs.
type DiscordUser struct {
	ID          string
	Username    string
	GlobalName  string
	AvatarURL   string
	IsBot       bool
}

// DiscordChannel is the subset of channel state the engine needs.
type DiscordChannel struct {
	ID      string
	GuildID string
	Name    string
	IsText  bool
}

// DiscordAttachment is one file attached to a source message.
type DiscordAttachment struct {
	URL         string
	Filename    string
	ContentType string
}

// DiscordReaction is one emoji's aggregate reaction state on a message.
type DiscordReaction struct {
	EmojiID   string
	EmojiName string
	Count     int
}

// DiscordMessage is a fetched source message with everything the publisher
// needs to render a crosspost.
type DiscordMessage struct {
	ID                string
	ChannelID         string
	GuildID           string
	Content           string
	AuthorID          string
	AuthorUsername    string
	AuthorDisplayName string
	AuthorAvatarURL   string
	// WebhookID is set when the message was posted by a webhook.
	WebhookID   string
	Attachments []DiscordAttachment
	Embeds      []*discordgo.MessageEmbed
	Reactions   []DiscordReaction
}

// ReactionCount returns the aggregate count for the given emoji on the
// message, zero when nobody reacted with it.
func (m *DiscordMessage) ReactionCount(emojiID, emojiName string) int {
	for _, reaction := range m.Reactions {
		if emojiID != "" && reaction.EmojiID == emojiID {
			return reaction.Count
		}
		if emojiID == "" && reaction.EmojiID == "" && reaction.EmojiName == emojiName {
			return reaction.Count
		}
	}
	return 0
}

// DiscordWebhook identifies a channel webhook the bot can execute.
type DiscordWebhook struct {
	ID        string
	Token     string
	ChannelID string
}

// WebhookMessageParams is the rendered crosspost handed to the webhook.
type WebhookMessageParams struct {
	Username  string
	AvatarURL string
	Content   string
	Embeds    []*discordgo.MessageEmbed
	// LinkURL/LinkLabel render the "Posted in #channel" button back to the
	// source message.
	LinkURL   string
	LinkLabel string
}

// DiscordClient defines the interface for Discord API operations
type DiscordClient interface {
	// Bot operations
	GetBotUser() (*DiscordUser, error)

	// Message operations
	GetMessage(channelID, messageID string) (*DiscordMessage, error)
	DeleteMessage(channelID, messageID string) error

	// Channel operations
	GetChannel(channelID string) (*DiscordChannel, error)
	IsChannelPubliclyVisible(channelID string) (bool, error)

	// Webhook operations
	EnsureManagedWebhook(channelID string) (*DiscordWebhook, error)
	SendWebhookMessage(webhook *DiscordWebhook, params WebhookMessageParams) (string, error)
	IsOwnWebhook(webhookID string) (bool, error)

	// Reaction operations
	AddReaction(channelID, messageID, emojiID string) error
	RemoveOwnReaction(channelID, messageID, emojiID string) error
}
