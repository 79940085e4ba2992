package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestLimiter_QuotaEnforced(t *testing.T) {
	l := NewLimiter(5, time.Minute)

	for i := 0; i < 5; i++ {
		if ok, _ := l.Allow("alice"); !ok {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	ok, retryAfter := l.Allow("alice")
	if ok {
		t.Error("6th request within window should be denied")
	}
	if retryAfter <= 0 || retryAfter > time.Minute {
		t.Errorf("unexpected retry-after %v", retryAfter)
	}
}

func TestLimiter_UsersIsolated(t *testing.T) {
	l := NewLimiter(1, time.Minute)

	if ok, _ := l.Allow("alice"); !ok {
		t.Fatal("alice's first request should pass")
	}
	if ok, _ := l.Allow("bob"); !ok {
		t.Error("bob should not share alice's quota")
	}
	if ok, _ := l.Allow("alice"); ok {
		t.Error("alice's second request should be denied")
	}
}

func TestLimiter_WindowRolls(t *testing.T) {
	l := NewLimiter(2, 50*time.Millisecond)

	l.Allow("carol")
	l.Allow("carol")
	if ok, _ := l.Allow("carol"); ok {
		t.Fatal("quota should be exhausted")
	}

	time.Sleep(80 * time.Millisecond)

	if ok, _ := l.Allow("carol"); !ok {
		t.Error("request should pass after the window rolled")
	}
}

func TestLimiter_Remaining(t *testing.T) {
	l := NewLimiter(5, time.Minute)

	if got := l.Remaining("dave"); got != 5 {
		t.Errorf("fresh user remaining = %d, want 5", got)
	}

	l.Allow("dave")
	l.Allow("dave")
	if got := l.Remaining("dave"); got != 3 {
		t.Errorf("remaining = %d, want 3", got)
	}
}

func TestLimiter_ConcurrentSameUser(t *testing.T) {
	l := NewLimiter(50, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("storm"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 50 {
		t.Errorf("allowed %d concurrent requests, want exactly 50", allowed)
	}
}

func TestLimiter_ConcurrentManyUsers(t *testing.T) {
	l := NewLimiter(1, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			user := fmt.Sprintf("user-%d", n)
			if ok, _ := l.Allow(user); !ok {
				t.Errorf("%s first request denied", user)
			}
		}(i)
	}
	wg.Wait()
}
