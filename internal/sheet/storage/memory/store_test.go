package memory

import (
	"context"
	"testing"
)

func TestPutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := New()

	if _, ok, err := store.Get(ctx, "formData"); err != nil || ok {
		t.Fatalf("get missing = ok %v, err %v", ok, err)
	}
	value := []byte(`{"strengthStat":"5"}`)
	if err := store.Put(ctx, "formData", value); err != nil {
		t.Fatalf("put: %v", err)
	}
	value[2] = 'X'

	got, ok, err := store.Get(ctx, "formData")
	if err != nil || !ok {
		t.Fatalf("get = ok %v, err %v", ok, err)
	}
	if string(got) != `{"strengthStat":"5"}` {
		t.Fatalf("stored value aliased caller buffer: %s", got)
	}
	if err := store.Delete(ctx, "formData"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "formData"); ok {
		t.Fatal("expected key to be gone")
	}
	if store.Writes != 1 {
		t.Fatalf("writes = %d, want 1", store.Writes)
	}
}

func TestClosedStoreRejectsCalls(t *testing.T) {
	store := New()
	_ = store.Close()
	if err := store.Put(context.Background(), "k", nil); err == nil {
		t.Fatal("expected closed store error")
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := New().Get(ctx, "k"); err == nil {
		t.Fatal("expected context error")
	}
}
