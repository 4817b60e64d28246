package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is a point-in-time snapshot of the backing dependencies.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether every dependency answered its last ping. A zero
// snapshot (no check has run yet) counts as healthy so the endpoint does not
// flap during startup.
func (h HealthStatus) Healthy() bool {
	if h.CheckedAt.IsZero() {
		return true
	}
	if !h.Mongo {
		return false
	}
	for _, ok := range h.Redis {
		if !ok {
			return false
		}
	}
	return true
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

func setHealthStatus(h HealthStatus) {
	healthMu.Lock()
	currentHealth = h
	healthMu.Unlock()
}

func checkDependencies(ctx context.Context, redisClients []*redis.Client, mongoClient *mongo.Client) HealthStatus {
	redisHealth := make([]bool, 0, len(redisClients))
	for _, client := range redisClients {
		redisHealth = append(redisHealth, client.Ping(ctx).Err() == nil)
	}
	return HealthStatus{
		Mongo:     mongoClient.Ping(ctx, nil) == nil,
		Redis:     redisHealth,
		CheckedAt: time.Now(),
	}
}

// StartHealthMonitor pings Mongo and Redis once a minute and keeps the latest
// snapshot in memory for the health endpoint. The first check runs
// immediately so the snapshot is populated shortly after boot.
func StartHealthMonitor(redisClients []*redis.Client, mongoClient *mongo.Client) {
	go func() {
		ctx := context.Background()
		setHealthStatus(checkDependencies(ctx, redisClients, mongoClient))

		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			setHealthStatus(checkDependencies(ctx, redisClients, mongoClient))
		}
	}()
}
