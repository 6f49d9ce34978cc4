package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apistyle/apilint/internal/testutil"
)

func TestMatchesExtension(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		extensions []string
		want       bool
	}{
		{"yaml matches", "schemas/invoice.yaml", []string{".yaml", ".yml"}, true},
		{"yml matches", "schemas/invoice.yml", []string{".yaml", ".yml"}, true},
		{"json not in list", "schemas/invoice.json", []string{".yaml", ".yml"}, false},
		{"case insensitive", "schemas/INVOICE.YAML", []string{".yaml"}, true},
		{"no extension", "schemas/README", []string{".yaml"}, false},
		{"empty list matches all", "anything.txt", nil, true},
		{"editor swap file", "schemas/.invoice.yaml.swp", []string{".yaml"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchesExtension(tt.path, tt.extensions)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeExtensions(t *testing.T) {
	got := normalizeExtensions([]string{"yaml", ".YML", " json ", ""})
	assert.Equal(t, []string{".yaml", ".yml", ".json"}, got)
}

func TestSkipDir(t *testing.T) {
	assert.True(t, skipDir(".git"))
	assert.True(t, skipDir(".apilint"))
	assert.True(t, skipDir("node_modules"))
	assert.False(t, skipDir("schemas"))
	assert.False(t, skipDir("."))
}

func startWatcher(t *testing.T, dir string, extensions []string) (<-chan []string, context.CancelFunc, <-chan error) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	w := New(dir, extensions, 20*time.Millisecond, testutil.NewTestLogger(t))

	changes := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(paths []string) { changes <- paths })
	}()

	// Give the watcher a beat to register before the test writes files
	time.Sleep(50 * time.Millisecond)
	return changes, cancel, done
}

func TestWatcherDetectsWrites(t *testing.T) {
	dir := t.TempDir()
	changes, cancel, done := startWatcher(t, dir, []string{".yaml"})
	defer cancel()

	path := filepath.Join(dir, "invoice.yaml")
	require.NoError(t, os.WriteFile(path, []byte("type: object\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	select {
	case paths := <-changes:
		require.Len(t, paths, 1)
		assert.Equal(t, path, paths[0])
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change callback")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watcher to stop")
	}
}

func TestWatcherIgnoresHiddenDirs(t *testing.T) {
	dir := t.TempDir()
	hidden := filepath.Join(dir, ".cache")
	require.NoError(t, os.Mkdir(hidden, 0o755))

	changes, cancel, _ := startWatcher(t, dir, []string{".yaml"})
	defer cancel()

	require.NoError(t, os.WriteFile(filepath.Join(hidden, "stale.yaml"), []byte("type: object\n"), 0o644))

	select {
	case paths := <-changes:
		t.Fatalf("expected no callback for hidden dir, got %v", paths)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherWatchesNewSubdirs(t *testing.T) {
	dir := t.TempDir()
	changes, cancel, _ := startWatcher(t, dir, []string{".yaml"})
	defer cancel()

	sub := filepath.Join(dir, "billing")
	require.NoError(t, os.Mkdir(sub, 0o755))

	// The new directory needs a moment to be added to the watch set
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(sub, "invoice.yaml")
	require.NoError(t, os.WriteFile(path, []byte("type: object\n"), 0o644))

	select {
	case paths := <-changes:
		assert.Contains(t, paths, path)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change callback")
	}
}
