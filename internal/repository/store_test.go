package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"messenger/internal/models"
	"messenger/internal/service"
)

func openTestStore(t *testing.T) *SQLStore {
	t.Helper()
	target := "sqlite:///" + filepath.Join(t.TempDir(), "messages.db")
	if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
		target = dsn
	}
	store, err := Open(context.Background(), target)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Reset(context.Background()); err != nil {
		t.Fatalf("reset store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustInsert(t *testing.T, s *SQLStore, from, to int, content string) int {
	t.Helper()
	id, err := s.Insert(context.Background(), from, models.NewMessage{ReceiverID: to, Content: content})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	return id
}

func TestInsertAndGet(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	id := mustInsert(t, store, 1, 2, "hi")
	if id != 1 {
		t.Fatalf("expected first id 1, got %d", id)
	}
	msg, err := store.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if msg.ID != 1 || msg.SenderID != 1 || msg.ReceiverID != 2 || msg.Content != "hi" || msg.ReadStatus {
		t.Errorf("unexpected message %+v", msg)
	}
	if !msg.Time.Equal(fixed) {
		t.Errorf("expected time %v, got %v", fixed, msg.Time)
	}

	if _, err := store.GetByID(ctx, 2); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListFilters(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	mustInsert(t, store, 3, 1, "a") // 1
	mustInsert(t, store, 3, 2, "b") // 2
	mustInsert(t, store, 4, 1, "c") // 3
	mustInsert(t, store, 3, 1, "d") // 4
	for _, id := range []int{1, 3} {
		if err := store.SetReadStatus(ctx, id, true); err != nil {
			t.Fatal(err)
		}
	}

	ptr := func(v int) *int { return &v }
	yes, no := true, false
	tests := []struct {
		name   string
		filter models.MessageFilter
		want   []int
	}{
		{"no filter", models.MessageFilter{}, []int{1, 2, 3, 4}},
		{"sender", models.MessageFilter{SenderID: ptr(3)}, []int{1, 2, 4}},
		{"receiver", models.MessageFilter{ReceiverID: ptr(1)}, []int{1, 3, 4}},
		{"sender and read", models.MessageFilter{SenderID: ptr(3), ReadStatus: &yes}, []int{1}},
		{"unread", models.MessageFilter{ReadStatus: &no}, []int{2, 4}},
		{"all three", models.MessageFilter{SenderID: ptr(4), ReceiverID: ptr(1), ReadStatus: &yes}, []int{3}},
		{"empty", models.MessageFilter{SenderID: ptr(99)}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if got == nil {
				t.Fatal("expected non-nil slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d messages, got %d", len(tt.want), len(got))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("position %d: expected id %d, got %d", i, id, got[i].ID)
				}
			}
		})
	}
}

func TestSetReadStatus(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	id := mustInsert(t, store, 1, 2, "hi")

	for _, read := range []bool{true, true, false, false} {
		if err := store.SetReadStatus(ctx, id, read); err != nil {
			t.Fatalf("set %v: %v", read, err)
		}
		msg, err := store.GetByID(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		if msg.ReadStatus != read {
			t.Errorf("expected read status %v, got %v", read, msg.ReadStatus)
		}
	}

	if err := store.SetReadStatus(ctx, 404, true); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIsPermanentAndIDsAreNotReused(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	mustInsert(t, store, 1, 2, "first")
	last := mustInsert(t, store, 1, 2, "second")

	if err := store.Delete(ctx, last); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetByID(ctx, last); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, last); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}

	next := mustInsert(t, store, 1, 2, "third")
	if next != last+1 {
		t.Errorf("expected id %d after deleting %d, got %d", last+1, last, next)
	}
}

func TestIDsContinueFromExistingRows(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	// Rows written by an older deployment that had no high-water table.
	_, err := store.db.ExecContext(ctx, store.dialect.rebind(
		`INSERT INTO messages (`+messageColumns+`) VALUES (?, ?, ?, ?, ?, ?)`),
		10, 1, 2, time.Now().UTC(), "legacy", false)
	if err != nil {
		t.Fatal(err)
	}
	if id := mustInsert(t, store, 1, 2, "new"); id != 11 {
		t.Errorf("expected id 11, got %d", id)
	}
}

func TestConcurrentInsertsAssignDistinctIDs(t *testing.T) {
	store := openTestStore(t)
	initialMax := mustInsert(t, store, 1, 1, "seed")
	const n = 40

	ids := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := store.Insert(context.Background(), i, models.NewMessage{ReceiverID: 1, Content: "race"})
			if err != nil {
				t.Errorf("insert %d: %v", i, err)
				return
			}
			ids <- id
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("id %d assigned twice", id)
		}
		seen[id] = true
	}
	for id := initialMax + 1; id <= initialMax+n; id++ {
		if !seen[id] {
			t.Errorf("id %d never assigned", id)
		}
	}

	all, err := store.List(context.Background(), models.MessageFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != n+1 {
		t.Errorf("expected %d stored messages, got %d", n+1, len(all))
	}
}

func TestCanceledContextLeavesNoRow(t *testing.T) {
	store := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Insert(ctx, 1, models.NewMessage{ReceiverID: 2, Content: "lost"}); err == nil {
		t.Fatal("expected error for canceled context")
	}
	all, err := store.List(context.Background(), models.MessageFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("expected no messages, got %d", len(all))
	}
	if id := mustInsert(t, store, 1, 2, "kept"); id != 1 {
		t.Errorf("expected id 1, got %d", id)
	}
}
