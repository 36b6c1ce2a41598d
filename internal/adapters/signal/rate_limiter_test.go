package signal

import (
	"testing"
	"time"
)

func TestTranslationLimiter(t *testing.T) {
	rl := NewTranslationLimiter(2, time.Hour)

	if !rl.Allow("c1") || !rl.Allow("c1") {
		t.Fatal("first attempts within limit were denied")
	}
	if rl.Allow("c1") {
		t.Fatal("attempt over the limit was allowed")
	}
	// Other connections have their own window.
	if !rl.Allow("c2") {
		t.Fatal("unrelated connection was denied")
	}
}

func TestTranslationLimiterWindowExpiry(t *testing.T) {
	rl := NewTranslationLimiter(1, 10*time.Millisecond)
	if !rl.Allow("c1") {
		t.Fatal("first attempt denied")
	}
	if rl.Allow("c1") {
		t.Fatal("second attempt inside window allowed")
	}
	time.Sleep(20 * time.Millisecond)
	if !rl.Allow("c1") {
		t.Fatal("attempt after window expiry denied")
	}
}
