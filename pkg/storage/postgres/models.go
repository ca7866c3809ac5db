package postgres

import "time"

// User is an account that can authenticate against the gateway.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"type:text;not null;uniqueIndex:idx_users_username"`
	Email        string `gorm:"type:text;not null"`
	PasswordHash string `gorm:"type:text;not null"`
	IsAdmin      bool   `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}

// AuthToken is the opaque bearer credential issued to a user. One token per
// user, get-or-create semantics.
type AuthToken struct {
	Key    string `gorm:"type:varchar(64);primaryKey"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_auth_tokens_user"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (AuthToken) TableName() string {
	return "auth_tokens"
}

// HistoryRecord is the durable log entry of one successful quote lookup by
// one user. Records are append-only; the gateway never mutates or deletes them.
type HistoryRecord struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;index:idx_history_user"`

	// Provider timestamp "YYYY-MM-DD HH:MM:SS"; lexicographic order matches
	// chronological order, which the history listing relies on.
	Date   string `gorm:"type:varchar(32);not null"`
	Name   string `gorm:"type:text;not null"`
	Symbol string `gorm:"type:text;not null;index:idx_history_symbol"`

	Open  float64 `gorm:"type:numeric;not null"`
	High  float64 `gorm:"type:numeric;not null"`
	Low   float64 `gorm:"type:numeric;not null"`
	Close float64 `gorm:"type:numeric;not null"`

	RecordedAt time.Time `gorm:"autoCreateTime"`
}

func (HistoryRecord) TableName() string {
	return "history_records"
}

// SymbolCount is one row of the stats aggregate. It is derived on demand and
// never persisted.
type SymbolCount struct {
	Symbol         string `gorm:"column:symbol"`
	TimesRequested int64  `gorm:"column:times_requested"`
}
