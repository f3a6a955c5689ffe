package models

import (
	"time"

	"github.com/lib/pq"
)

// MaxEmojiPerKind caps how many custom and unicode emoji a guild can register.
const MaxEmojiPerKind = 20

// DefaultPromotionThreshold is the reaction count required for promotion when
// a guild has not configured one.
const DefaultPromotionThreshold = 3

// GuildSetting holds a guild's starboard configuration. FeedChannelID is nil
// until the guild runs the starboard setup, which keeps promotion disabled
// while counting still proceeds.
type GuildSetting struct {
	ID            string         `json:"id"              db:"id"`
	GuildID       string         `json:"guild_id"        db:"guild_id"`
	Amount        int            `json:"amount"          db:"amount"`
	FeedChannelID *string        `json:"feed_channel_id" db:"feed_channel_id"`
	CustomEmoji   pq.StringArray `json:"custom_emoji"    db:"custom_emoji"`
	UnicodeEmoji  pq.StringArray `json:"unicode_emoji"   db:"unicode_emoji"`
	CreatedAt     time.Time      `json:"created_at"      db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"      db:"updated_at"`
}

// PromotionEnabled reports whether the guild has a feed channel configured.
func (g *GuildSetting) PromotionEnabled() bool {
	return g.FeedChannelID != nil && *g.FeedChannelID != ""
}

// AllowsEmoji reports whether the reacted emoji is in the guild's allowed set.
// Custom emoji match on snowflake ID, unicode emoji on the raw name.
func (g *GuildSetting) AllowsEmoji(emojiID, emojiName string) bool {
	if emojiID != "" {
		for _, id := range g.CustomEmoji {
			if id == emojiID {
				return true
			}
		}
		return false
	}
	for _, name := range g.UnicodeEmoji {
		if name == emojiName {
			return true
		}
	}
	return false
}
