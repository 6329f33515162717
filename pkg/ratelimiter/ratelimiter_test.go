package ratelimiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketCapacity(t *testing.T) {
	tb := NewTokenBucket(3, 1)

	assert.True(t, tb.TakeToken())
	assert.True(t, tb.TakeToken())
	assert.True(t, tb.TakeToken())
	assert.False(t, tb.TakeToken(), "bucket should be empty after capacity draws")
}

func TestTokenBucketClampsInvalidValues(t *testing.T) {
	tb := NewTokenBucket(0, -5)

	assert.True(t, tb.TakeToken())
	assert.False(t, tb.TakeToken())
}

func TestTokenBucketRefill(t *testing.T) {
	tb := NewTokenBucket(1, 1000)
	assert.True(t, tb.TakeToken())

	// At 1000 tokens/s the bucket refills within Wait's minimum sleep.
	tb.Wait()
}
