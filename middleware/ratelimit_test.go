package middleware

import (
	"testing"
)

func TestTokenBucketDrains(t *testing.T) {
	tb := NewTokenBucket(3, 0.001) // effectively no refill during the test

	for i := 0; i < 3; i++ {
		if !tb.Allow() {
			t.Fatalf("request %d denied before bucket drained", i)
		}
	}
	if tb.Allow() {
		t.Fatal("request allowed past bucket capacity")
	}
}

func TestRateLimiterIsolatesKeys(t *testing.T) {
	rl := NewRateLimiter(1, 3600)

	if !rl.Allow("1.2.3.4") {
		t.Fatal("first request for key denied")
	}
	if rl.Allow("1.2.3.4") {
		t.Fatal("second request for drained key allowed")
	}
	// A different key gets its own bucket.
	if !rl.Allow("5.6.7.8") {
		t.Fatal("fresh key denied")
	}
}
