package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_IncrementAndGet(t *testing.T) {
	store := NewMemoryStore()
	resetTime := time.Now().Add(time.Minute)

	assert.Equal(t, 1, store.Increment("key", resetTime))
	assert.Equal(t, 2, store.Increment("key", resetTime))

	count, gotReset, exists := store.Get("key")
	assert.True(t, exists)
	assert.Equal(t, 2, count)
	assert.WithinDuration(t, resetTime, gotReset, time.Second)
}

func TestMemoryStore_ExpiredEntryRestartsWindow(t *testing.T) {
	store := NewMemoryStore()

	store.Increment("key", time.Now().Add(-time.Second))

	_, _, exists := store.Get("key")
	assert.False(t, exists)

	assert.Equal(t, 1, store.Increment("key", time.Now().Add(time.Minute)))
}

func TestMemoryStore_Reset(t *testing.T) {
	store := NewMemoryStore()

	store.Increment("key", time.Now().Add(time.Minute))
	store.Reset("key")

	_, _, exists := store.Get("key")
	assert.False(t, exists)
}

func TestMemoryStore_KeysAreIndependent(t *testing.T) {
	store := NewMemoryStore()
	resetTime := time.Now().Add(time.Minute)

	store.Increment("a", resetTime)
	store.Increment("a", resetTime)
	store.Increment("b", resetTime)

	countA, _, _ := store.Get("a")
	countB, _, _ := store.Get("b")
	assert.Equal(t, 2, countA)
	assert.Equal(t, 1, countB)
}
