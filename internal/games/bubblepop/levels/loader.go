// Package levels provides level loading for bubblepop.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/levels/formats"
)

//go:embed data
var embedded embed.FS

// ErrNotFound is returned when no level has the requested ID.
var ErrNotFound = errors.New("level not found")

// Level represents a complete level definition.
type Level struct {
	formats.Level
	FilePath string
}

// Loader loads level files from a file system.
type Loader struct {
	fsys fs.FS
	name string
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{fsys: os.DirFS(root), name: root}
}

// NewFSLoader creates a loader over any file system. name is used in errors.
func NewFSLoader(fsys fs.FS, name string) *Loader {
	return &Loader{fsys: fsys, name: name}
}

// Builtin returns a loader for the levels shipped with the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return NewFSLoader(sub, "builtin")
}

// Name returns the loader's display name.
func (l *Loader) Name() string {
	return l.name
}

// LoadAll walks the file system and loads every supported level file.
// Invalid files are skipped. Returns levels sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			// Skip invalid files
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", l.name, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads a single level file, by path relative to the loader root.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	return Level{Level: parsed, FilePath: path.Join(filepath.ToSlash(l.name), p)}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	return findByID(l.LoadAll, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	return listIDs(l.LoadAll)
}

// Set merges several loaders. A level in a later loader replaces an earlier
// level with the same ID.
type Set []*Loader

// DefaultSet returns the builtin levels overlaid with ~/.bubblepop/levels
// when that directory exists.
func DefaultSet() Set {
	set := Set{Builtin()}
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, ".bubblepop", "levels")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			set = append(set, NewLoader(dir))
		}
	}
	return set
}

// LoadAll loads every level of every loader. Returns levels sorted by ID.
func (s Set) LoadAll() ([]Level, error) {
	byID := make(map[string]Level)
	for _, l := range s {
		levels, err := l.LoadAll()
		if err != nil {
			return nil, err
		}
		for _, lvl := range levels {
			byID[lvl.ID] = lvl
		}
	}

	out := make([]Level, 0, len(byID))
	for _, lvl := range byID {
		out = append(out, lvl)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// LoadByID loads a specific level by ID.
func (s Set) LoadByID(id string) (Level, error) {
	return findByID(s.LoadAll, id)
}

// ListIDs returns all level IDs in sorted order.
func (s Set) ListIDs() ([]string, error) {
	return listIDs(s.LoadAll)
}

// Next returns the level that follows id in ID order.
func (s Set) Next(id string) (Level, bool) {
	levels, err := s.LoadAll()
	if err != nil {
		return Level{}, false
	}
	for i, lvl := range levels {
		if lvl.ID == id && i+1 < len(levels) {
			return levels[i+1], true
		}
	}
	return Level{}, false
}

func findByID(load func() ([]Level, error), id string) (Level, error) {
	levels, err := load()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func listIDs(load func() ([]Level, error)) ([]string, error) {
	levels, err := load()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	case ".toml":
		return formats.ParseTOML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
