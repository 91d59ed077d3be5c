// Package service defines the interfaces shared between application layers.
package service

import "context"

// Document keys under which the four collections are persisted.
const (
	KeyExpenses = "expenses"
	KeyBudgets  = "budgets"
	KeyGoals    = "goals"
	KeySettings = "settings"
)

// CollectionKeys lists every persisted collection key.
func CollectionKeys() []string {
	return []string{KeyExpenses, KeyBudgets, KeyGoals, KeySettings}
}

// DocumentStore is durable key-value storage for serialized collections.
// Each key holds one standalone document that is read and written whole.
type DocumentStore interface {
	// Get returns the document stored under key, or an error wrapping
	// common.ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the document stored under key.
	Put(ctx context.Context, key string, value []byte) error
	// PutAll replaces several documents atomically.
	PutAll(ctx context.Context, docs map[string][]byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys lists the stored keys in lexical order.
	Keys(ctx context.Context) ([]string, error)
	Close() error
}
