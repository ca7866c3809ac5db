package gateway_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"stockgate/pkg/stooq"
	"stockgate/pkg/storage/postgres"
)

var errInsert = errors.New("insert failed")

// memIdentityStore is an in-memory IdentityStore. The fake stores plaintext
// passwords in PasswordHash; hashing is the real store's concern.
type memIdentityStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[string]*postgres.User
	byID   map[uint]*postgres.User
	tokens map[string]uint
}

func newMemIdentityStore() *memIdentityStore {
	return &memIdentityStore{
		users:  make(map[string]*postgres.User),
		byID:   make(map[uint]*postgres.User),
		tokens: make(map[string]uint),
	}
}

func (m *memIdentityStore) addUser(username, email, password string, isAdmin bool) *postgres.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	user := &postgres.User{
		ID:           m.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: password,
		IsAdmin:      isAdmin,
	}
	m.users[username] = user
	m.byID[user.ID] = user
	return user
}

func (m *memIdentityStore) Authenticate(_ context.Context, username, password string) (*postgres.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[username]
	if !ok || user.PasswordHash != password {
		return nil, postgres.ErrInvalidCredentials
	}
	return user, nil
}

func (m *memIdentityStore) GetOrCreateToken(_ context.Context, userID uint) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, id := range m.tokens {
		if id == userID {
			return key, nil
		}
	}
	key := fmt.Sprintf("token-%d", userID)
	m.tokens[key] = userID
	return key, nil
}

func (m *memIdentityStore) ResolveToken(_ context.Context, key string) (*postgres.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.tokens[key]
	if !ok {
		return nil, errors.New("token not found")
	}
	return m.byID[id], nil
}

// memHistoryStore is an in-memory HistoryStore.
type memHistoryStore struct {
	mu        sync.Mutex
	nextID    uint
	records   []postgres.HistoryRecord
	insertErr error
}

func newMemHistoryStore() *memHistoryStore {
	return &memHistoryStore{records: make([]postgres.HistoryRecord, 0)}
}

func (m *memHistoryStore) InsertHistory(_ context.Context, record *postgres.HistoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	m.nextID++
	record.ID = m.nextID
	m.records = append(m.records, *record)
	return nil
}

func (m *memHistoryStore) ListHistoryByUser(_ context.Context, userID uint) ([]postgres.HistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []postgres.HistoryRecord
	for _, r := range m.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (m *memHistoryStore) TopSymbols(_ context.Context, limit int) ([]postgres.SymbolCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[string]int64)
	var order []string
	for _, r := range m.records {
		if counts[r.Symbol] == 0 {
			order = append(order, r.Symbol)
		}
		counts[r.Symbol]++
	}
	out := make([]postgres.SymbolCount, 0, len(order))
	for _, symbol := range order {
		out = append(out, postgres.SymbolCount{Symbol: symbol, TimesRequested: counts[symbol]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TimesRequested > out[j].TimesRequested })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memHistoryStore) all() []postgres.HistoryRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]postgres.HistoryRecord, len(m.records))
	copy(out, m.records)
	return out
}

// fakeQuotes is a canned QuoteFetcher.
type fakeQuotes struct {
	quote *stooq.Quote
	err   error
	calls int
}

func (f *fakeQuotes) Fetch(_ context.Context, _ string) (*stooq.Quote, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.quote, nil
}
