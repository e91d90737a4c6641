// Package db carries the transaction boundary shared by all repositories.
package db

import (
	"context"

	"gorm.io/gorm"
)

// txKey carries the open transaction through the context.
type txKey struct{}

// TransactionManager runs a unit of work atomically. Status transitions,
// ticket minting and history appends all ride the same transaction, so a
// failure anywhere rolls back the whole mutation.
type TransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// RunInTransaction opens a transaction, stashes it in the context handed to
// fn and commits when fn returns nil. Repositories called inside fn pick the
// transaction up via GetTxFromContext.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, txKey{}, tx)
		return fn(txCtx)
	})
}

// GetTxFromContext returns the transaction carried by ctx, or defaultDB when
// the caller is outside any transaction. Repositories route every query
// through this so reads and writes inside a unit of work share one
// transaction.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}
