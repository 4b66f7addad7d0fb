// Package store persists game snapshots by game ID.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Record is one stored game. Snapshot is the engine's binary save; FEN is
// kept alongside for people reading the database.
type Record struct {
	ID        string    `bson:"_id"`
	Snapshot  []byte    `bson:"snapshot"`
	FEN       string    `bson:"fen"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Store saves and loads game records. Load returns errors.ErrGameNotFound
// for an unknown ID.
type Store interface {
	Save(ctx context.Context, rec Record) error
	Load(ctx context.Context, id string) (Record, error)
	Delete(ctx context.Context, id string) error
	Close(ctx context.Context) error
}

// Open creates the store selected by the configuration.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case config.MemoryBackend:
		return NewMemoryStore(), nil
	case config.MongoBackend:
		s, err := NewMongoStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("store backend %q: %w", cfg.Backend, errors.ErrInvalidConfig)
}
