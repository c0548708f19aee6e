package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRootCommand_Subcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := map[string]bool{"extract": false, "publish": false, "cache": false}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	if c.Logger.GetLevel() != LogInfo {
		t.Errorf("initial level = %v, want info", c.Logger.GetLevel())
	}

	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("level after SetLogLevel = %v, want debug", c.Logger.GetLevel())
	}
}

func TestNewCache_NoCache(t *testing.T) {
	c := New(io.Discard, LogInfo)

	store, err := c.newCache(&Config{}, true)
	if err != nil {
		t.Fatalf("newCache failed: %v", err)
	}
	if store == nil {
		t.Fatal("newCache returned nil store")
	}
}

func TestNewCache_RedisFallbackWarns(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	// Nothing listens on port 1, so the Redis ping fails and the file cache
	// takes over. The failure must be surfaced in the logs.
	cfg := &Config{Redis: RedisConfig{Addr: "127.0.0.1:1"}}
	store, err := c.newCache(cfg, false)
	if err != nil {
		t.Fatalf("newCache failed: %v", err)
	}
	if store == nil {
		t.Fatal("newCache returned nil store")
	}
	if !strings.Contains(buf.String(), "falling back to file cache") {
		t.Errorf("no fallback warning logged, got: %q", buf.String())
	}
}

func TestExtractModel_Progress(t *testing.T) {
	m := newExtractModel()

	updated, _ := m.Update(fileMsg{done: 3, total: 10})
	m = updated.(extractModel)
	if m.done != 3 || m.total != 10 {
		t.Errorf("progress = %d/%d, want 3/10", m.done, m.total)
	}
	if m.View() == "" {
		t.Error("in-flight view is empty")
	}

	updated, cmd := m.Update(finishedMsg{})
	m = updated.(extractModel)
	if !m.finished {
		t.Error("finishedMsg did not mark the model finished")
	}
	if cmd == nil {
		t.Error("finishedMsg did not quit the program")
	}
	if m.View() != "" {
		t.Error("finished view is not empty")
	}
}

func TestExtractModel_Abort(t *testing.T) {
	m := newExtractModel()

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = updated.(extractModel)
	if !m.aborted {
		t.Error("ctrl+c did not mark the model aborted")
	}
	if cmd == nil {
		t.Error("ctrl+c did not quit the program")
	}
}
