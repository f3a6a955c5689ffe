package models

// ReactionEvent is the normalized gateway reaction-add/remove payload the
// engine consumes. EmojiID is empty for unicode emoji; EmojiName is empty only
// when the gateway omits it for an uncached custom emoji.
type ReactionEvent struct {
	GuildID   string
	ChannelID string
	MessageID string
	// UserID is the user who reacted.
	UserID string
	// AuthorID is the author of the message being reacted to.
	AuthorID  string
	EmojiID   string
	EmojiName string
	// Count is the reaction count on the message as observed by the gateway.
	Count int
	// FromOwnWebhook is set when the message was posted by the bot's own
	// crosspost webhook, to break the starboard feedback loop.
	FromOwnWebhook bool
}
