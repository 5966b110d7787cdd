// Package loader reads multipick configuration sources into nested maps.
//
// A File reads one TOML or YAML document; EnvLoader maps MULTIPICK_*
// variables onto the same section.key paths. DeepMerge combines maps from
// several sources, later sources winning.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for config files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Loader produces a configuration map. A source that does not exist
// yields nil, nil.
type Loader interface {
	Load() (map[string]any, error)
}

// FileSystem reads whole files. fstest.MapFS satisfies it.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
}

// OSFS reads from the operating system.
type OSFS struct{}

// ReadFile implements FileSystem.
func (OSFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// DefaultFS returns the OS file system.
func DefaultFS() FileSystem {
	return OSFS{}
}

// Format decodes one configuration document.
type Format struct {
	Name  string
	parse func(data []byte) (map[string]any, error)
	// position extracts a 1-based line and column from a parse error.
	position func(err error) (line, col int)
}

// Parse decodes data. source names the document in errors.
func (f Format) Parse(source string, data []byte) (map[string]any, error) {
	m, err := f.parse(data)
	if err == nil {
		return m, nil
	}

	perr := &ParseError{Path: source, Format: f.Name, Err: err}
	if f.position != nil {
		perr.Line, perr.Column = f.position(err)
	}
	return nil, perr
}

// File loads a configuration file in a fixed format.
type File struct {
	fsys   FileSystem
	path   string
	format Format
}

// NewFile creates a loader for path. A nil fsys means the OS file system.
func NewFile(fsys FileSystem, path string, format Format) *File {
	if fsys == nil {
		fsys = DefaultFS()
	}
	return &File{fsys: fsys, path: path, format: format}
}

// ForPath picks the format from the extension of path.
func ForPath(fsys FileSystem, path string) (*File, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return NewFile(fsys, path, TOML), nil
	case ".yaml", ".yml":
		return NewFile(fsys, path, YAML), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// Format returns the file format.
func (f *File) Format() Format {
	return f.format
}

// Load implements Loader. A missing file is not an error.
func (f *File) Load() (map[string]any, error) {
	data, err := f.fsys.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", f.path, err)
	}
	return f.format.Parse(f.path, data)
}

// ParseError reports a malformed configuration document.
type ParseError struct {
	Path   string
	Format string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	where := e.Path
	switch {
	case e.Line > 0 && e.Column > 0:
		where = fmt.Sprintf("%s:%d:%d", e.Path, e.Line, e.Column)
	case e.Line > 0:
		where = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	return fmt.Sprintf("invalid %s in %s: %v", e.Format, where, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DeepMerge copies src into dst and returns dst. Nested maps merge key by
// key; any other src value replaces what dst held.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for key, v := range src {
		next, ok := v.(map[string]any)
		prev, wasMap := dst[key].(map[string]any)
		if ok && wasMap {
			dst[key] = DeepMerge(prev, next)
			continue
		}
		dst[key] = v
	}
	return dst
}
