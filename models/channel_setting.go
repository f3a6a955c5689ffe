package models

import "time"

// ChannelSetting overrides the default visibility heuristic for one channel.
// Absence of a row means "use the default rule": channels readable by
// @everyone are eligible for the starboard.
type ChannelSetting struct {
	ID        string    `json:"id"         db:"id"`
	ChannelID string    `json:"channel_id" db:"channel_id"`
	GuildID   string    `json:"guild_id"   db:"guild_id"`
	Visible   bool      `json:"visible"    db:"visible"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
