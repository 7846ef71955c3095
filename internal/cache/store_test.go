package cache

import (
	"os"
	"path/filepath"
	"testing"

	"histfetch/internal/history"
	"histfetch/internal/testutil"
)

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	ds := testutil.NewDataset("AAPL", history.Interval1d, 5)

	if err := store.Put("aapl_1d_test", ds); err != nil {
		t.Fatalf("Put() returned unexpected error: %v", err)
	}

	got, ok := store.Get("aapl_1d_test")
	if !ok {
		t.Fatal("Get() reported miss after Put()")
	}
	if !got.Equal(ds) {
		t.Errorf("Get() returned dataset different from what was stored")
	}
}

func TestStore_Get_Missing(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	if _, ok := store.Get("never_stored"); ok {
		t.Error("Get() on missing key reported a hit")
	}
}

func TestStore_Get_Corrupted(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, nil)

	tests := []struct {
		name    string
		content string
	}{
		{"not json", "this is not json{{{"},
		{"wrong shape", `{"foo": 42}`},
		{"empty file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "corrupt"+entryExtension)
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("failed to write corrupted file: %v", err)
			}

			if _, ok := store.Get("corrupt"); ok {
				t.Error("Get() on corrupted entry reported a hit")
			}

			// Corrupted entries get removed so the next fetch rewrites them
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Error("corrupted entry was not removed")
			}
		})
	}
}

func TestStore_Put_OverwritesExisting(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	first := testutil.NewDataset("AAPL", history.Interval1d, 3)
	second := testutil.NewDataset("AAPL", history.Interval1d, 7)

	if err := store.Put("key", first); err != nil {
		t.Fatalf("Put(first) returned unexpected error: %v", err)
	}
	if err := store.Put("key", second); err != nil {
		t.Fatalf("Put(second) returned unexpected error: %v", err)
	}

	got, ok := store.Get("key")
	if !ok {
		t.Fatal("Get() reported miss after overwrite")
	}
	if len(got.Bars) != 7 {
		t.Errorf("Get() returned %d bars, want the 7 from the overwrite", len(got.Bars))
	}
}

func TestStore_Put_CreatesRootLazily(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "cache")
	store := NewStore(root, nil)

	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Fatal("cache root should not exist before first write")
	}

	if err := store.Put("key", testutil.NewDataset("AAPL", history.Interval1d, 2)); err != nil {
		t.Fatalf("Put() returned unexpected error: %v", err)
	}

	if _, err := os.Stat(root); err != nil {
		t.Errorf("cache root missing after Put(): %v", err)
	}
}

func TestStore_Put_RejectsEmptyDataset(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	empty := &history.Dataset{Symbol: "AAPL", Interval: history.Interval1d}
	if err := store.Put("key", empty); err == nil {
		t.Error("Put() with empty dataset expected error, got nil")
	}
	if err := store.Put("key", nil); err == nil {
		t.Error("Put() with nil dataset expected error, got nil")
	}
}

func TestStore_Put_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, nil)

	if err := store.Put("key", testutil.NewDataset("AAPL", history.Interval1d, 3)); err != nil {
		t.Fatalf("Put() returned unexpected error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read cache dir: %v", err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("cache dir holds %d files %v, want exactly 1", len(entries), names)
	}
}

func TestStore_Invalidate(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	if err := store.Put("key", testutil.NewDataset("AAPL", history.Interval1d, 3)); err != nil {
		t.Fatalf("Put() returned unexpected error: %v", err)
	}

	if err := store.Invalidate("key"); err != nil {
		t.Fatalf("Invalidate() returned unexpected error: %v", err)
	}
	if _, ok := store.Get("key"); ok {
		t.Error("Get() reported a hit after Invalidate()")
	}

	// Invalidating a missing key is a no-op
	if err := store.Invalidate("never_stored"); err != nil {
		t.Errorf("Invalidate() on missing key returned error: %v", err)
	}
}
