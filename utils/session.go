// File: gearbook/utils/session.go
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gearbook/models"

	"github.com/go-redis/redis/v8"
)

// SessionRecord is the durable server-side half of a session: the hash of the
// issued token plus the role it was issued for. Stored under a single Redis
// key per user so login and logout replace or clear token and role atomically.
type SessionRecord struct {
	TokenHash     string      `json:"tokenHash"`
	Role          models.Role `json:"role"`
	Email         string      `json:"email"`
	CreatedAt     time.Time   `json:"createdAt"`
	LastUpdatedAt time.Time   `json:"lastUpdatedAt"`
}

// SaveSession writes the session record for a user, replacing any previous one.
func SaveSession(ctx context.Context, client *redis.Client, userID string, rec SessionRecord) error {
	rec.LastUpdatedAt = time.Now()
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}
	if err := client.Set(ctx, AuthCachePrefix+userID, data, AuthCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session record: %w", err)
	}
	return nil
}

// GetSession retrieves the session record for a user. Returns redis.Nil
// wrapped when no session exists.
func GetSession(ctx context.Context, client *redis.Client, userID string) (*SessionRecord, error) {
	data, err := client.Get(ctx, AuthCachePrefix+userID).Result()
	if err != nil {
		return nil, err
	}
	var rec SessionRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session record: %w", err)
	}
	return &rec, nil
}

// DeleteSession removes the session record for a user. Token and role go
// together; there is no state where one survives the other.
func DeleteSession(ctx context.Context, client *redis.Client, userID string) error {
	return client.Del(ctx, AuthCachePrefix+userID).Err()
}
