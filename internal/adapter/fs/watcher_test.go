package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWatcherBatchesChanges(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/keep.go", "package src")
	writeFile(t, root, "node_modules/pkg/index.js", "")

	accept := func(path string) bool { return strings.HasSuffix(path, ".go") }
	w, err := NewWatcher([]string{"node_modules"}, accept, 50*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, root, func(files []string) { batches <- files })
	}()

	// Give the watcher time to register directories.
	time.Sleep(200 * time.Millisecond)

	writeFile(t, root, "node_modules/pkg/index.go", "package pkg")
	writeFile(t, root, "src/notes.txt", "ignored")
	target := writeFile(t, root, "src/keep.go", "package src\n\nfunc Keep() {}\n")

	select {
	case files := <-batches:
		if len(files) != 1 || files[0] != target {
			t.Errorf("expected [%s], got %v", target, files)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change batch")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherIgnoredPath(t *testing.T) {
	w, err := NewWatcher([]string{"dist"}, nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer w.fw.Close()

	w.root = filepath.Join(os.TempDir(), "dist", "project")
	if w.ignoredPath(filepath.Join(w.root, "src", "a.ts")) {
		t.Error("ancestor above the root must not count as ignored")
	}
	if !w.ignoredPath(filepath.Join(w.root, "dist", "a.ts")) {
		t.Error("expected dist/ below the root to be ignored")
	}
}
