package mem

import (
	"testing"
	"time"
)

func TestIdempotencyKeysReserveOnce(t *testing.T) {
	s := NewIdempotencyKeys()
	if !s.Reserve("k1", time.Minute) {
		t.Fatalf("first reserve should succeed")
	}
	if s.Reserve("k1", time.Minute) {
		t.Fatalf("second reserve should fail while key is live")
	}
	if _, pending, ok := s.Lookup("k1"); !ok || !pending {
		t.Fatalf("expected pending entry, got pending=%v ok=%v", pending, ok)
	}

	s.Complete("k1", []byte(`{"status":"success"}`))
	resp, pending, ok := s.Lookup("k1")
	if !ok || pending || string(resp) != `{"status":"success"}` {
		t.Fatalf("unexpected lookup: %q pending=%v ok=%v", resp, pending, ok)
	}
}

func TestIdempotencyKeysExpire(t *testing.T) {
	s := NewIdempotencyKeys()
	base := time.Now()
	s.now = func() time.Time { return base }
	s.Reserve("k1", time.Second)

	s.now = func() time.Time { return base.Add(2 * time.Second) }
	if _, _, ok := s.Lookup("k1"); ok {
		t.Fatalf("expired key should not be found")
	}
	if !s.Reserve("k1", time.Second) {
		t.Fatalf("expired key should be reservable again")
	}
}

func TestIdempotencyKeysRelease(t *testing.T) {
	s := NewIdempotencyKeys()
	s.Reserve("k1", time.Minute)
	s.Release("k1")
	if !s.Reserve("k1", time.Minute) {
		t.Fatalf("released key should be reservable")
	}
}
