package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestBucket_Take(t *testing.T) {
	b := newBucket(10, 1.0) // 10 tokens, 1 token per second

	// Should allow 10 requests immediately (burst)
	for i := 0; i < 10; i++ {
		allowed, _, _ := b.take()
		if !allowed {
			t.Errorf("Expected request %d to be allowed", i+1)
		}
	}

	// 11th request should be denied (no tokens left)
	if allowed, _, _ := b.take(); allowed {
		t.Error("Expected 11th request to be denied")
	}
}

func TestBucket_Refill(t *testing.T) {
	b := newBucket(10, 1.0) // 1 token per second

	for i := 0; i < 10; i++ {
		b.take()
	}

	// Wait for 1 token to refill
	time.Sleep(1100 * time.Millisecond)

	if allowed, _, _ := b.take(); !allowed {
		t.Error("Expected request to be allowed after refill")
	}
	if allowed, _, _ := b.take(); allowed {
		t.Error("Expected request to be denied after consuming refilled token")
	}
}

func TestLimiter_Allow_EndpointTiers(t *testing.T) {
	l := NewLimiter(DefaultConfig())
	defer l.Stop()

	// Preview endpoint has a burst of 10
	denied := 0
	for i := 0; i < 20; i++ {
		allowed, info := l.Allow("10.0.0.1", "/previews", "POST")
		if !allowed {
			denied++
			if info.RetryAfter <= 0 {
				t.Error("Expected positive RetryAfter on denial")
			}
		}
	}
	if denied == 0 {
		t.Error("Expected some preview requests to be rate limited past the burst")
	}
}

func TestLimiter_Allow_HealthUnlimited(t *testing.T) {
	l := NewLimiter(DefaultConfig())
	defer l.Stop()

	for i := 0; i < 1000; i++ {
		if allowed, _ := l.Allow("10.0.0.1", "/health", "GET"); !allowed {
			t.Fatalf("Health check should never be rate limited (request %d)", i+1)
		}
	}
}

func TestLimiter_Allow_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		if allowed, _ := l.Allow("10.0.0.1", "/previews", "POST"); !allowed {
			t.Fatal("Disabled limiter should allow everything")
		}
	}
}

func TestLimiter_Allow_ExemptClient(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Exempt["10.0.0.99"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 100; i++ {
		if allowed, _ := l.Allow("10.0.0.99", "/previews", "POST"); !allowed {
			t.Fatal("Exempt client should never be rate limited")
		}
	}
}

func TestLimiter_Allow_ClientsIsolated(t *testing.T) {
	l := NewLimiter(DefaultConfig())
	defer l.Stop()

	// Exhaust client A's preview budget
	for i := 0; i < 20; i++ {
		l.Allow("10.0.0.1", "/previews", "POST")
	}

	// Client B should still be allowed
	if allowed, _ := l.Allow("10.0.0.2", "/previews", "POST"); !allowed {
		t.Error("A different client should have its own bucket")
	}
}

func TestLimiter_Allow_Concurrent(t *testing.T) {
	l := NewLimiter(DefaultConfig())
	defer l.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			client := fmt.Sprintf("10.0.1.%d", n%5)
			l.Allow(client, "/feedback", "POST")
		}(i)
	}
	wg.Wait()
}

func TestMatchEndpoint(t *testing.T) {
	configs := defaultEndpointConfigs()

	tests := []struct {
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{"/previews", "POST", 60, false},
		{"/graphs/export", "POST", 30, false},
		{"/feedback", "POST", 300, false},
		{"/previews", "GET", 0, true},
		{"/unknown", "POST", 0, true},
	}

	for _, tt := range tests {
		got := matchEndpoint(tt.path, tt.method, configs)
		if tt.wantNil {
			if got != nil {
				t.Errorf("matchEndpoint(%s %s) = %+v, want nil", tt.method, tt.path, got)
			}
			continue
		}
		if got == nil || got.Limit != tt.wantLimit {
			t.Errorf("matchEndpoint(%s %s) limit = %+v, want %d", tt.method, tt.path, got, tt.wantLimit)
		}
	}

	// Health check is always unlimited
	if got := matchEndpoint("/health", "GET", configs); got == nil || got.Limit != 0 {
		t.Errorf("health check should match an unlimited rule, got %+v", got)
	}
}
