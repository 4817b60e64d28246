package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHealthStatusHealthy(t *testing.T) {
	now := time.Now()

	// No check has run yet.
	assert.True(t, HealthStatus{}.Healthy())

	assert.True(t, HealthStatus{Mongo: true, Redis: []bool{true, true}, CheckedAt: now}.Healthy())
	assert.False(t, HealthStatus{Mongo: false, Redis: []bool{true, true}, CheckedAt: now}.Healthy())
	assert.False(t, HealthStatus{Mongo: true, Redis: []bool{true, false}, CheckedAt: now}.Healthy())
}

func TestHealthSnapshotRoundTrip(t *testing.T) {
	defer setHealthStatus(HealthStatus{})

	want := HealthStatus{Mongo: true, Redis: []bool{false}, CheckedAt: time.Now()}
	setHealthStatus(want)
	assert.Equal(t, want, GetHealthStatus())
}
