package tui

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-crusher/internal/games/crusher"
)

func TestShutdownClosesStoreAfterSessionsDrain(t *testing.T) {
	dir := t.TempDir()
	srv, err := NewSSHServer(SSHServerConfig{
		Address:     "127.0.0.1:0",
		HostKeyPath: filepath.Join(dir, "host_key"),
		DBPath:      filepath.Join(dir, "crusher.db"),
		Logger:      log.New(io.Discard),
	})
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	t.Cleanup(func() { crusher.SetPersistence(nil) })
	if srv.store == nil {
		t.Fatal("store not opened")
	}

	// A session finishing its round while the server drains.
	var writeErr error
	shutdown := srv.drain
	srv.drain = func(ctx context.Context) error {
		writeErr = srv.store.RecordError()
		return shutdown(ctx)
	}

	if err := srv.Shutdown(); err != nil {
		t.Fatalf("Shutdown() = %v", err)
	}
	if writeErr != nil {
		t.Errorf("write during drain failed: %v", writeErr)
	}
	if _, err := srv.store.ErrorCount(); err == nil {
		t.Error("store still open after Shutdown")
	}
}
