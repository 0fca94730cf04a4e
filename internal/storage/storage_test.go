package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestFile(t *testing.T) *File {
	t.Helper()
	f, err := NewFile(filepath.Join(t.TempDir(), "subscribers.txt"))
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	return f
}

func newTestDB(t *testing.T) *SQLite {
	t.Helper()
	s, err := NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func backends(t *testing.T) map[string]Recipients {
	t.Helper()
	return map[string]Recipients{
		"file":   newTestFile(t),
		"sqlite": newTestDB(t),
	}
}

func TestRecipientsAdd(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			added, err := store.Add(ctx, 12345)
			if err != nil {
				t.Fatalf("add: %v", err)
			}
			if !added {
				t.Error("expected first add to report added")
			}

			added, err = store.Add(ctx, 12345)
			if err != nil {
				t.Fatalf("add again: %v", err)
			}
			if added {
				t.Error("expected second add to report already present")
			}

			ids, err := store.List(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if diff := cmp.Diff([]int64{12345}, ids); diff != "" {
				t.Errorf("List mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRecipientsContainsAndOrder(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []int64{30, -100500, 10, 20} {
				if _, err := store.Add(ctx, id); err != nil {
					t.Fatalf("add %d: %v", id, err)
				}
			}

			ids, err := store.List(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if diff := cmp.Diff([]int64{-100500, 10, 20, 30}, ids); diff != "" {
				t.Errorf("List mismatch (-want +got):\n%s", diff)
			}

			tests := []struct {
				id   int64
				want bool
			}{
				{id: 10, want: true},
				{id: -100500, want: true},
				{id: 11, want: false},
			}
			for _, tt := range tests {
				got, err := store.Contains(ctx, tt.id)
				if err != nil {
					t.Fatalf("contains %d: %v", tt.id, err)
				}
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("Contains(%d) mismatch (-want +got):\n%s", tt.id, diff)
				}
			}
		})
	}
}

func TestRecipientsEmpty(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ids, err := store.List(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if diff := cmp.Diff(0, len(ids)); diff != "" {
				t.Errorf("expected no recipients (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRecipientsConcurrentAdd(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func(id int64) {
					defer wg.Done()
					if _, err := store.Add(ctx, id%5); err != nil {
						t.Errorf("add: %v", err)
					}
					if _, err := store.List(ctx); err != nil {
						t.Errorf("list: %v", err)
					}
				}(int64(i))
			}
			wg.Wait()

			ids, err := store.List(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if diff := cmp.Diff([]int64{0, 1, 2, 3, 4}, ids); diff != "" {
				t.Errorf("List mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilePersistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "subscribers.txt")

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	for _, id := range []int64{42, 7} {
		if _, err := f.Add(ctx, id); err != nil {
			t.Fatalf("add %d: %v", id, err)
		}
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if diff := cmp.Diff("7\n42\n", string(data)); diff != "" {
		t.Errorf("file content mismatch (-want +got):\n%s", diff)
	}

	reopened, err := NewFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	ids, err := reopened.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if diff := cmp.Diff([]int64{7, 42}, ids); diff != "" {
		t.Errorf("List after reopen mismatch (-want +got):\n%s", diff)
	}
}

func TestNewFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []int64
		wantErr bool
	}{
		{name: "one id per line", content: "1\n2\n3\n", want: []int64{1, 2, 3}},
		{name: "blank lines and spaces", content: "\n 5 \n\n-7\n", want: []int64{-7, 5}},
		{name: "duplicates collapse", content: "9\n9\n", want: []int64{9}},
		{name: "no trailing newline", content: "11", want: []int64{11}},
		{name: "malformed line", content: "1\nabc\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "subscribers.txt")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("write fixture: %v", err)
			}

			f, err := NewFile(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, _ := f.List(context.Background())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("List mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFileAddWriteFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "missing-dir", "subscribers.txt")

	f, err := NewFile(path)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if _, err := f.Add(ctx, 1); err == nil {
		t.Fatal("expected write error for missing directory")
	}

	ok, _ := f.Contains(ctx, 1)
	if ok {
		t.Error("failed add must not leave the id in memory")
	}
}

func TestSQLiteFilePersistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bot.db")

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	if _, err := s.Add(ctx, 12345); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	ok, err := reopened.Contains(ctx, 12345)
	if err != nil {
		t.Fatalf("contains: %v", err)
	}
	if !ok {
		t.Error("expected recipient to survive reopen")
	}
}
