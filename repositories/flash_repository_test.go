package repositories

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestFlashRepository(t *testing.T) (*RedisFlashRepository, *miniredis.Miniredis) {
	t.Helper()
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisFlashRepository(client, 600), mini
}

func TestFlashRepositoryPopReturnsInOrderOnce(t *testing.T) {
	repo, _ := newTestFlashRepository(t)
	ctx := context.Background()

	if err := repo.Push(ctx, "s1", Flash{Category: "danger", Message: "Dokumen tidak ditemukan"}); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := repo.Push(ctx, "s1", Flash{Category: "success", Message: "File dihapus"}); err != nil {
		t.Fatalf("push: %v", err)
	}

	flashes, err := repo.Pop(ctx, "s1")
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if len(flashes) != 2 || flashes[0].Message != "Dokumen tidak ditemukan" || flashes[1].Category != "success" {
		t.Fatalf("unexpected flashes %+v", flashes)
	}

	again, err := repo.Pop(ctx, "s1")
	if err != nil {
		t.Fatalf("second pop: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("expected flashes to be consumed, got %+v", again)
	}
}

func TestFlashRepositoryIsolatesSessionsAndExpires(t *testing.T) {
	repo, mini := newTestFlashRepository(t)
	ctx := context.Background()

	_ = repo.Push(ctx, "s1", Flash{Category: "info", Message: "hello"})
	other, err := repo.Pop(ctx, "s2")
	if err != nil || len(other) != 0 {
		t.Fatalf("expected empty flashes for other session, got %+v (%v)", other, err)
	}

	if ttl := mini.TTL(flashKey("s1")); ttl <= 0 {
		t.Fatalf("expected ttl on flash key, got %v", ttl)
	}
	mini.FastForward(mini.TTL(flashKey("s1")) + 1)

	expired, err := repo.Pop(ctx, "s1")
	if err != nil || len(expired) != 0 {
		t.Fatalf("expected expired flashes to be gone, got %+v (%v)", expired, err)
	}
}
