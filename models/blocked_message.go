package models

import "time"

// BlockedMessage is the ignore ledger: presence of a row vetoes promotion and
// record-keeping for the message unconditionally, regardless of reaction count.
type BlockedMessage struct {
	ID        string    `json:"id"         db:"id"`
	MessageID string    `json:"message_id" db:"message_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
