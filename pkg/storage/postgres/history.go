package postgres

import (
	"context"
	"fmt"
)

// InsertHistory appends one lookup record. The write is synchronous; the
// gateway does not answer a quote request until this has succeeded.
func (p *PostgresClient) InsertHistory(ctx context.Context, record *HistoryRecord) error {
	if err := p.DB.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("insert history record: %w", err)
	}
	return nil
}

// ListHistoryByUser returns all records owned by one user, most recent first.
func (p *PostgresClient) ListHistoryByUser(ctx context.Context, userID uint) ([]HistoryRecord, error) {
	var records []HistoryRecord
	err := p.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return records, nil
}

// TopSymbols groups all history records system-wide by symbol and returns the
// most queried ones, count descending. Ties keep the store's natural order.
func (p *PostgresClient) TopSymbols(ctx context.Context, limit int) ([]SymbolCount, error) {
	var rows []SymbolCount
	err := p.DB.WithContext(ctx).
		Model(&HistoryRecord{}).
		Select("symbol, COUNT(*) AS times_requested").
		Group("symbol").
		Order("times_requested DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate symbols: %w", err)
	}
	return rows, nil
}
