package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/otelqr/guest-services-api/internal/store"
)

// SnapshotRepository persists the announcement collection as a single
// versioned JSON blob in Redis. The blob is read and written wholesale;
// there is no per-record persistence and no TTL.
type SnapshotRepository struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// NewSnapshotRepository constructs a snapshot repository for the given key.
func NewSnapshotRepository(client *redis.Client, key string, logger *zap.Logger) *SnapshotRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotRepository{client: client, key: key, logger: logger}
}

// Load reads the stored snapshot. A missing key returns (nil, nil); a
// corrupt blob returns an error so the caller can fall back to seeds.
func (r *SnapshotRepository) Load(ctx context.Context) (*store.Snapshot, error) {
	if r.client == nil {
		return nil, nil
	}

	raw, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", r.key, err)
	}

	var snap store.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot %s: %w", r.key, err)
	}

	return &snap, nil
}

// Save writes the snapshot wholesale, replacing the previous blob.
func (r *SnapshotRepository) Save(ctx context.Context, snap store.Snapshot) error {
	if r.client == nil {
		return nil
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", r.key, err)
	}

	if err := r.client.Set(ctx, r.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}

	return nil
}
