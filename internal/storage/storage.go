// Package storage defines the recipient persistence interface and its implementations.
package storage

import (
	"context"
)

// Recipients is the set of chats that receive the daily fact.
// Implementations are safe for concurrent use.
type Recipients interface {
	// Add stores chatID and reports whether it was newly added.
	Add(ctx context.Context, chatID int64) (bool, error)
	Contains(ctx context.Context, chatID int64) (bool, error)
	// List returns all recipients in ascending order.
	List(ctx context.Context) ([]int64, error)

	Close() error
}
