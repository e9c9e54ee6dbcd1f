package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixil98/go-testutil"
)

// mockStoreSpec implements ValidatingSpec for testing FileStore
type mockStoreSpec struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func (s *mockStoreSpec) Validate() error {
	return nil
}

func writeAsset(t *testing.T, dir, id string, spec *mockStoreSpec) {
	t.Helper()
	asset := Asset[*mockStoreSpec]{
		Version:    1,
		Identifier: id,
		Spec:       spec,
	}
	data, err := json.Marshal(asset)
	if err != nil {
		t.Fatalf("failed to marshal test asset: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, id+".json"), data, 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
}

func TestNewFileStore(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "path", store.path, tmpDir)
	testutil.AssertEqual(t, "records length", len(store.records), 0)
}

func TestNewFileStore_NonExistentDirectory(t *testing.T) {
	_, err := NewFileStore[*mockStoreSpec]("/nonexistent/path/that/does/not/exist")
	if err == nil {
		t.Error("expected error for non-existent directory")
	}
}

func TestNewFileStore_WithExistingAssets(t *testing.T) {
	tmpDir := t.TempDir()

	writeAsset(t, tmpDir, "item-1", &mockStoreSpec{Name: "First", Value: 1})
	writeAsset(t, tmpDir, "item-2", &mockStoreSpec{Name: "Second", Value: 2})

	store, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "record count", len(store.records), 2)

	item1 := store.Get("item-1")
	if item1 == nil {
		t.Fatal("expected item-1 to be loaded")
	}
	testutil.AssertEqual(t, "item-1 name", item1.Name, "First")
}

func TestNewFileStore_DuplicateKey(t *testing.T) {
	tmpDir := t.TempDir()

	// Two files carrying the same identifier
	for _, file := range []string{"a.json", "b.json"} {
		asset := Asset[*mockStoreSpec]{
			Version:    1,
			Identifier: "same-id",
			Spec:       &mockStoreSpec{Name: "Dup"},
		}
		data, err := json.Marshal(asset)
		if err != nil {
			t.Fatalf("failed to marshal test asset: %v", err)
		}
		if err := os.WriteFile(filepath.Join(tmpDir, file), data, 0644); err != nil {
			t.Fatalf("failed to write test file: %v", err)
		}
	}

	_, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err == nil {
		t.Error("expected error for duplicate keys")
	}
}

func TestNewFileStore_InvalidJson(t *testing.T) {
	tmpDir := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmpDir, "bad.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err == nil {
		t.Error("expected error for invalid json")
	}
}

func TestFileStore_SaveAndGet(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Save("thing", &mockStoreSpec{Name: "Thing", Value: 7}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := store.Get("thing")
	if got == nil {
		t.Fatal("expected saved record")
	}
	testutil.AssertEqual(t, "name", got.Name, "Thing")

	// The write hits disk, so a fresh store sees it too.
	store2, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reloaded := store2.Get("thing")
	if reloaded == nil {
		t.Fatal("expected record to survive reload")
	}
	testutil.AssertEqual(t, "reloaded value", reloaded.Value, 7)
}

func TestFileStore_GetMissing(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := store.Get("missing"); got != nil {
		t.Errorf("expected nil for missing record, got %v", got)
	}
}

func TestFileStore_GetAll(t *testing.T) {
	tmpDir := t.TempDir()

	writeAsset(t, tmpDir, "item-1", &mockStoreSpec{Name: "First"})
	writeAsset(t, tmpDir, "item-2", &mockStoreSpec{Name: "Second"})

	store, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all := store.GetAll()
	testutil.AssertEqual(t, "count", len(all), 2)

	// Mutating the returned map doesn't touch the store.
	delete(all, "item-1")
	testutil.AssertEqual(t, "store unchanged", len(store.GetAll()), 2)
}

func TestFileStore_Delete(t *testing.T) {
	tmpDir := t.TempDir()

	writeAsset(t, tmpDir, "item-1", &mockStoreSpec{Name: "First"})

	store, err := NewFileStore[*mockStoreSpec](tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Delete("item-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := store.Get("item-1"); got != nil {
		t.Error("expected record gone")
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "item-1.json")); !os.IsNotExist(err) {
		t.Errorf("expected file removed, got %v", err)
	}

	// Deleting something that isn't there is fine.
	if err := store.Delete("item-1"); err != nil {
		t.Errorf("unexpected error on double delete: %v", err)
	}
}

func TestAtomicWrite(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "out.json")

	if err := AtomicWrite(target, []byte(`{"ok":true}`), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("reading target: %v", err)
	}
	testutil.AssertEqual(t, "content", string(data), `{"ok":true}`)

	// No temp file left behind.
	if _, err := os.Stat(target + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("expected temp file gone, got %v", err)
	}
}
