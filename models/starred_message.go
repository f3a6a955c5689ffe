package models

import (
	"time"

	"github.com/lib/pq"
)

// StarredMessage records a source message that has been cross-posted to the
// feed channel. Existence of a row is what makes promotion at-most-once: the
// message_id column carries a unique constraint, and a duplicate insert from
// a concurrent promotion attempt is treated as a benign outcome.
//
// Reactions holds the IDs of users whose reaction has already counted toward
// this message, so one user cycling add/remove/add cannot inflate the count.
type StarredMessage struct {
	ID          string         `json:"id"           db:"id"`
	MessageID   string         `json:"message_id"   db:"message_id"`
	ChannelID   string         `json:"channel_id"   db:"channel_id"`
	GuildID     string         `json:"guild_id"     db:"guild_id"`
	UserID      string         `json:"user_id"      db:"user_id"`
	Count       int            `json:"count"        db:"count"`
	CrosspostID string         `json:"crosspost_id" db:"crosspost_id"`
	Reactions   pq.StringArray `json:"reactions"    db:"reactions"`
	CreatedAt   time.Time      `json:"created_at"   db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"   db:"updated_at"`
}

// HasReactionFrom reports whether the user's reaction was already counted.
func (m *StarredMessage) HasReactionFrom(userID string) bool {
	for _, id := range m.Reactions {
		if id == userID {
			return true
		}
	}
	return false
}

// MessageAuthorStat is one leaderboard row: how many of a user's messages
// reached the starboard.
type MessageAuthorStat struct {
	UserID   string `json:"user_id"  db:"user_id"`
	Messages int    `json:"messages" db:"messages"`
}
