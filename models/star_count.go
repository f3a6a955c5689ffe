package models

import "time"

// StarCount is the per-(guild, user) tally of reactions given. Amount is the
// net of adds minus removes, so it can drop below zero if a user removes
// reactions they placed before the bot joined.
type StarCount struct {
	ID        string    `json:"id"         db:"id"`
	GuildID   string    `json:"guild_id"   db:"guild_id"`
	UserID    string    `json:"user_id"    db:"user_id"`
	Amount    int       `json:"amount"     db:"amount"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
