package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitFor(t *testing.T, ch <-chan string, want string) {
	t.Helper()
	select {
	case got := <-ch:
		if got != want {
			t.Errorf("event for %s, want %s", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no event for %s", want)
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "food.diary")
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("2024-01-01\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	w.Debounce = 0
	changed := make(chan string, 16)
	removed := make(chan string, 16)
	w.OnChange = func(p string) { changed <- p }
	w.OnRemove = func(p string) { removed <- p }

	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(other, []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("2024-01-02\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	abs, _ := filepath.Abs(path)
	waitFor(t, changed, abs)

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	waitFor(t, removed, abs)
}

func TestWatcherStopsWithContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "food.diary")
	w, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()
	select {
	case <-w.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
	w.Stop()
	w.Stop()
}

func TestNewWithoutStart(t *testing.T) {
	w, err := New("a.diary", "b.diary")
	if err != nil {
		t.Fatal(err)
	}
	if len(w.dirs) != 1 || len(w.files) != 2 {
		t.Errorf("dirs = %v, files = %v", w.dirs, w.files)
	}
	w.Stop()
}

func TestWatcherReportsLastWriteOfBurst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "food.diary")
	if err := os.WriteFile(path, []byte("2024-01-01\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	w.Debounce = 100 * time.Millisecond
	seen := make(chan string, 16)
	w.OnChange = func(p string) {
		data, _ := os.ReadFile(p)
		seen <- string(data)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("partial"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)
	if err := os.WriteFile(path, []byte("final\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var last string
	for {
		select {
		case got := <-seen:
			last = got
			continue
		case <-time.After(time.Second):
		}
		break
	}
	if last != "final\n" {
		t.Errorf("last change saw %q, want %q", last, "final\n")
	}
}

func TestWatcherDebounceCollapsesBurst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "food.diary")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	w.Debounce = 300 * time.Millisecond
	changed := make(chan string, 16)
	w.OnChange = func(p string) { changed <- p }
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("2024-01-01\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}
	abs, _ := filepath.Abs(path)
	waitFor(t, changed, abs)
	select {
	case p := <-changed:
		t.Errorf("second change for %s after a single burst", p)
	case <-time.After(600 * time.Millisecond):
	}
}
