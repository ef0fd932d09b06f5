package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const defaultDirName = "outputs"

var (
	ErrDirRequired      = errors.New("report directory is required")
	ErrFilenameRequired = errors.New("report filename is required")
	ErrInvalidFilename  = errors.New("invalid report filename")
)

// Info describes one saved report on disk.
type Info struct {
	Name      string
	Path      string
	UpdatedAt time.Time
	SizeBytes int64
}

// Store persists reports as flat files under one output directory. The
// directory is created lazily on first save.
type Store struct {
	dir string
	mu  sync.Mutex
}

// NewStore constructs a report store rooted at dir.
func NewStore(dir string) (*Store, error) {
	root := strings.TrimSpace(dir)
	if root == "" {
		return nil, ErrDirRequired
	}
	return &Store{dir: root}, nil
}

// DefaultDir returns the canonical output directory relative to the working
// directory.
func DefaultDir() string {
	return defaultDirName
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes content to filename inside the output directory, overwriting
// any previous report with the same name. It returns the written path and
// the content length in characters.
func (s *Store) Save(ctx context.Context, filename, content string) (string, int, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	path, err := s.reportPath(filename)
	if err != nil {
		return "", 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create report dir %s: %w", s.dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", 0, fmt.Errorf("write report %s: %w", path, err)
	}

	return path, utf8.RuneCountInString(content), nil
}

// List returns saved reports sorted by newest first.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read report dir %s: %w", s.dir, err)
	}

	out := make([]Info, 0, len(items))
	for _, item := range items {
		if item.IsDir() {
			continue
		}

		info, err := item.Info()
		if err != nil {
			return nil, fmt.Errorf("read report file info %s: %w", item.Name(), err)
		}

		out = append(out, Info{
			Name:      item.Name(),
			Path:      filepath.Join(s.dir, item.Name()),
			UpdatedAt: info.ModTime(),
			SizeBytes: info.Size(),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].Name > out[j].Name
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *Store) reportPath(filename string) (string, error) {
	name := strings.TrimSpace(filename)
	if name == "" {
		return "", ErrFilenameRequired
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %s", ErrInvalidFilename, name)
	}
	return filepath.Join(s.dir, name), nil
}
