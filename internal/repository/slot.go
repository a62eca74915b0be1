package repository

import (
	"context"
	"errors"
)

// ErrSlotNotFound is returned by SlotStore.Get when the key holds no value.
var ErrSlotNotFound = errors.New("storage slot not found")

// SlotStore is a key-value store holding one serialized document per storage key.
type SlotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
