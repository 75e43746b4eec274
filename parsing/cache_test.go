package parsing

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestCache_ReusesUnchangedFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Local.java", localSrc)

	cache, err := NewCache(0)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	first, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if first != second {
		t.Errorf("expected an unchanged file to be served from the cache")
	}

	writeFile(t, dir, "Local.java", localSrc+"\ninterface Extra {}\n")
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	third, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if third == first {
		t.Errorf("expected a modified file to be parsed again")
	}
	if len(third.TopLevelClasses) != 2 {
		t.Errorf("expected the new declaration to be parsed, got %d", len(third.TopLevelClasses))
	}
	if cache.Len() != 1 {
		t.Errorf("expected one cache entry, got %d", cache.Len())
	}
}

func TestLoadIndex_SkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "BaseView.java", baseViewSrc),
		writeFile(t, dir, "MainView.java", mainViewSrc),
		writeFile(t, dir, "Local.java", localSrc),
		writeFile(t, dir, "Broken.java", "interface Broken { void x( }"),
		filepath.Join(dir, "Missing.java"),
	}

	cache, err := NewCache(16)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	idx, failures, err := LoadIndex(context.Background(), cache, paths, 2)
	if err != nil {
		t.Fatalf("LoadIndex: %v", err)
	}
	if len(failures) != 2 {
		t.Errorf("expected the broken and missing files to be reported, got %v", failures)
	}
	if len(idx.Files()) != 3 {
		t.Errorf("expected 3 indexed files, got %d", len(idx.Files()))
	}

	main := idx.Lookup("com.example.main.MainView")
	if main == nil || main.Parents[0] == nil {
		t.Errorf("expected the loaded index to be linked")
	}
}

func TestLoadIndex_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewCache(16)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := LoadIndex(ctx, cache, []string{writeFile(t, dir, "Local.java", localSrc)}, 1); err == nil {
		t.Errorf("expected a cancelled context to abort loading")
	}
}
