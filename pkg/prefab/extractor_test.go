package prefab

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/lootdex/lootdex/pkg/cache"
)

func writePrefab(t *testing.T, dir, name string, id int) string {
	t.Helper()
	content := fmt.Sprintf("itemid: %d\nshortname: item.%d\ndisplayName:\n  english: Item %d\n", id, id, id)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractAll_OrderedOutput(t *testing.T) {
	dir := t.TempDir()
	// Written in reverse name order; output must be path-sorted regardless.
	paths := []string{
		writePrefab(t, dir, "c.prefab.txt", 3),
		writePrefab(t, dir, "a.prefab.txt", 1),
		writePrefab(t, dir, "b.prefab.txt", 2),
	}

	e := &Extractor{Workers: 2}
	batch, err := e.ExtractAll(context.Background(), paths)
	if err != nil {
		t.Fatalf("ExtractAll failed: %v", err)
	}

	if batch.Files != 3 || batch.Failed != 0 {
		t.Errorf("Files = %d, Failed = %d, want 3 and 0", batch.Files, batch.Failed)
	}
	if len(batch.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(batch.Items))
	}
	for i, want := range []int{1, 2, 3} {
		if batch.Items[i].ItemID != want {
			t.Errorf("items[%d].ItemID = %d, want %d (path-sorted order)", i, batch.Items[i].ItemID, want)
		}
	}
}

func TestExtractAll_UnreadableFileSkipped(t *testing.T) {
	dir := t.TempDir()
	good := writePrefab(t, dir, "good.prefab.txt", 1)
	missing := filepath.Join(dir, "missing.prefab.txt")

	var logged []string
	e := &Extractor{Logger: func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}}

	batch, err := e.ExtractAll(context.Background(), []string{good, missing})
	if err != nil {
		t.Fatalf("ExtractAll failed: %v", err)
	}
	if batch.Failed != 1 {
		t.Errorf("Failed = %d, want 1", batch.Failed)
	}
	if len(batch.Items) != 1 {
		t.Errorf("got %d items, want 1", len(batch.Items))
	}
	if len(logged) == 0 {
		t.Error("file failure not logged")
	}
}

func TestExtractAll_CacheHits(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writePrefab(t, dir, "a.prefab.txt", 1),
		writePrefab(t, dir, "b.prefab.txt", 2),
	}

	store, err := cache.NewFileCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	e := &Extractor{Cache: store}

	first, err := e.ExtractAll(context.Background(), paths)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if first.CacheHits != 0 {
		t.Errorf("first run CacheHits = %d, want 0", first.CacheHits)
	}

	second, err := e.ExtractAll(context.Background(), paths)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if second.CacheHits != 2 {
		t.Errorf("second run CacheHits = %d, want 2", second.CacheHits)
	}
	if len(second.Items) != len(first.Items) {
		t.Errorf("cached run yielded %d items, first run %d", len(second.Items), len(first.Items))
	}

	// Refresh bypasses the cache.
	e.Refresh = true
	third, err := e.ExtractAll(context.Background(), paths)
	if err != nil {
		t.Fatalf("refresh run failed: %v", err)
	}
	if third.CacheHits != 0 {
		t.Errorf("refresh run CacheHits = %d, want 0", third.CacheHits)
	}
}

func TestExtractAll_ProgressCallback(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writePrefab(t, dir, "a.prefab.txt", 1),
		writePrefab(t, dir, "b.prefab.txt", 2),
		writePrefab(t, dir, "c.prefab.txt", 3),
	}

	var calls, lastDone, lastTotal int
	e := &Extractor{Workers: 1, OnFile: func(done, total int) {
		calls++
		lastDone, lastTotal = done, total
	}}

	if _, err := e.ExtractAll(context.Background(), paths); err != nil {
		t.Fatalf("ExtractAll failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("OnFile called %d times, want 3", calls)
	}
	if lastDone != 3 || lastTotal != 3 {
		t.Errorf("final progress %d/%d, want 3/3", lastDone, lastTotal)
	}
}

func TestExtractAll_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 50; i++ {
		paths = append(paths, writePrefab(t, dir, fmt.Sprintf("p%02d.prefab.txt", i), i+1))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := &Extractor{}
	if _, err := e.ExtractAll(ctx, paths); err == nil {
		t.Error("ExtractAll returned nil error on cancelled context")
	}
}
