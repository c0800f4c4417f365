package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcher_RunsOnChange(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "stories.md")
	require.NoError(t, os.WriteFile(target, []byte("v1"), 0o644))

	w, err := New(target, 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			calls <- struct{}{}
			return errors.New("handler errors are logged, not fatal")
		})
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.md"), []byte("x"), 0o644))
	select {
	case <-calls:
		t.Fatal("change to another file triggered the handler")
	case <-time.After(150 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(target, []byte("v2"), 0o644))
	select {
	case <-calls:
	case <-time.After(3 * time.Second):
		t.Fatal("handler not called after write")
	}

	require.NoError(t, os.WriteFile(target, []byte("v3"), 0o644))
	select {
	case <-calls:
	case <-time.After(3 * time.Second):
		t.Fatal("handler not called after second write")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "stories.md"), 0)
	require.Error(t, err)
}
