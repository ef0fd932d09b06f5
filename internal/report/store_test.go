package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewStoreRequiresDir(t *testing.T) {
	t.Parallel()

	if _, err := NewStore("   "); !errors.Is(err, ErrDirRequired) {
		t.Fatalf("NewStore() error = %v, want ErrDirRequired", err)
	}
}

func TestStoreSaveWritesReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	content := "# AI Agents\n\nAgents are loops around a model."
	path, chars, err := store.Save(context.Background(), "ai_agents_report.md", content)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if want := filepath.Join(dir, "ai_agents_report.md"); path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	if chars != len([]rune(content)) {
		t.Fatalf("chars = %d, want %d", chars, len([]rune(content)))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != content {
		t.Fatalf("file content = %q, want %q", data, content)
	}
}

func TestStoreSaveCountsCharactersNotBytes(t *testing.T) {
	t.Parallel()

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	content := "héllo wörld ✓"
	_, chars, err := store.Save(context.Background(), "multibyte.md", content)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if want := len([]rune(content)); chars != want {
		t.Fatalf("chars = %d, want %d (bytes = %d)", chars, want, len(content))
	}
}

func TestStoreSaveOverwrites(t *testing.T) {
	t.Parallel()

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	if _, _, err := store.Save(context.Background(), "report.md", "first"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	path, _, err := store.Save(context.Background(), "report.md", "second")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "second" {
		t.Fatalf("file content = %q, want second", data)
	}
}

func TestStoreSaveCreatesDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "outputs")
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	if _, _, err := store.Save(context.Background(), "report.md", "content"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("output dir not created: %v", err)
	}
}

func TestStoreSaveRejectsBadFilenames(t *testing.T) {
	t.Parallel()

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	tests := []struct {
		name     string
		filename string
		want     error
	}{
		{name: "empty", filename: "   ", want: ErrFilenameRequired},
		{name: "slash", filename: "a/b.md", want: ErrInvalidFilename},
		{name: "backslash", filename: `a\b.md`, want: ErrInvalidFilename},
		{name: "parent traversal", filename: "..", want: ErrInvalidFilename},
		{name: "dot", filename: ".", want: ErrInvalidFilename},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, _, err := store.Save(context.Background(), tt.filename, "content"); !errors.Is(err, tt.want) {
				t.Fatalf("Save(%q) error = %v, want %v", tt.filename, err, tt.want)
			}
		})
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	t.Parallel()

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	oldPath, _, err := store.Save(context.Background(), "old.md", "old")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, _, err := store.Save(context.Background(), "new.md", "new"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(oldPath, past, past); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}

	reports, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("len(reports) = %d, want 2", len(reports))
	}
	if reports[0].Name != "new.md" || reports[1].Name != "old.md" {
		t.Fatalf("order = %q, %q, want new.md, old.md", reports[0].Name, reports[1].Name)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	t.Parallel()

	store, err := NewStore(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	reports, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(reports) != 0 {
		t.Fatalf("len(reports) = %d, want 0", len(reports))
	}
}
