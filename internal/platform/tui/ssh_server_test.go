package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/config"
)

func TestSessionID(t *testing.T) {
	at := time.Unix(0, 42)

	if got := SessionID("alice", at); got != "alice-42" {
		t.Errorf("SessionID() = %q, expected alice-42", got)
	}
	if got := SessionID("", at); !strings.HasPrefix(got, "anon-") {
		t.Errorf("SessionID() for an empty user = %q", got)
	}
}

func TestNewSSHServer(t *testing.T) {
	keyPath := filepath.Join(t.TempDir(), "keys", "host_key")
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = keyPath

	srv, err := NewSSHServer(cfg, SessionDeps{Game: config.DefaultBlocksConfig()})
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q", srv.Addr())
	}
	if _, err := os.Stat(filepath.Dir(keyPath)); err != nil {
		t.Errorf("host key directory not created: %v", err)
	}
}
