package gateway

import (
	"context"

	"stockgate/pkg/storage/postgres"
)

// Identity is the resolved caller of one request: a plain record, resolved
// once by the auth middleware and passed explicitly, never ambient state.
type Identity struct {
	UserID  uint
	Email   string
	IsAdmin bool
}

// IdentityStore is the capability surface the gateway needs from the
// identity/token store. Satisfied by *postgres.PostgresClient.
type IdentityStore interface {
	Authenticate(ctx context.Context, username, password string) (*postgres.User, error)
	GetOrCreateToken(ctx context.Context, userID uint) (string, error)
	ResolveToken(ctx context.Context, key string) (*postgres.User, error)
}

// HistoryStore is the capability surface for the persistent query log.
// Satisfied by *postgres.PostgresClient.
type HistoryStore interface {
	InsertHistory(ctx context.Context, record *postgres.HistoryRecord) error
	ListHistoryByUser(ctx context.Context, userID uint) ([]postgres.HistoryRecord, error)
	TopSymbols(ctx context.Context, limit int) ([]postgres.SymbolCount, error)
}
