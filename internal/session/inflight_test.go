package session

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestGuardRejectsSecondSubmission(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	guard := NewGuard(client, 30*time.Second)
	ctx := context.Background()

	acquired, err := guard.Acquire(ctx, "sess-1", "appointment_create")
	if err != nil || !acquired {
		t.Fatalf("first acquire should succeed: acquired=%v err=%v", acquired, err)
	}

	acquired, err = guard.Acquire(ctx, "sess-1", "appointment_create")
	if err != nil {
		t.Fatalf("second acquire errored: %v", err)
	}
	if acquired {
		t.Fatal("second identical submission should be rejected")
	}

	// A different action or session is unaffected.
	if ok, _ := guard.Acquire(ctx, "sess-1", "appointment_cancel"); !ok {
		t.Fatal("different action should not be blocked")
	}
	if ok, _ := guard.Acquire(ctx, "sess-2", "appointment_create"); !ok {
		t.Fatal("different session should not be blocked")
	}

	if err := guard.Release(ctx, "sess-1", "appointment_create"); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if ok, _ := guard.Acquire(ctx, "sess-1", "appointment_create"); !ok {
		t.Fatal("acquire after release should succeed")
	}
}

func TestGuardLockExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	guard := NewGuard(client, 10*time.Second)
	ctx := context.Background()

	if ok, _ := guard.Acquire(ctx, "sess-1", "x"); !ok {
		t.Fatal("acquire failed")
	}

	mr.FastForward(11 * time.Second)

	if ok, _ := guard.Acquire(ctx, "sess-1", "x"); !ok {
		t.Fatal("lock should have expired")
	}
}
