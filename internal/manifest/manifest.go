// Package manifest has functions for loading dolang build manifests,
// TOML-based files that name the source files making up a multi-file
// program. A manifest may include other manifests, which are expanded in
// place when the source list is resolved.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
)

// MaxRecursionDepth is how many manifests deep an inclusion chain may go
// before resolution gives up.
const MaxRecursionDepth = 32

var (
	// ErrEmpty is the error returned when a manifest is read successfully
	// but resolving it yields no source files at all.
	ErrEmpty = errors.New("does not list any valid files to include")

	// ErrStackOverflow is the error returned when the recursion level of
	// MaxRecursionDepth is reached and an additional manifest is then
	// specified, which would cause recursion to go deeper.
	ErrStackOverflow = errors.New("too many manifests deep")

	// ErrCircularRef is the error returned when a manifest specifies any
	// series of files that with their own manifests refer back to the
	// original manifest, and therefore cannot be followed.
	ErrCircularRef = errors.New("manifest inclusion chain refers back to itself")
)

// FileInfo contains the essential header information all dolang TOML files
// must contain. It can be obtained from a file by reading it into memory and
// calling ScanFileInfo on the bytes.
type FileInfo struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
}

// Manifest contains data loaded from a manifest file.
type Manifest struct {
	Files []string
}

type topLevel struct {
	Format string   `toml:"format"`
	Type   string   `toml:"type"`
	Files  []string `toml:"files"`
}

// LoadFile loads manifest data from a dolang TOML file.
func LoadFile(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}

	return Unmarshal(data)
}

// Unmarshal parses manifest data and validates its header.
func Unmarshal(data []byte) (Manifest, error) {
	var tl topLevel
	if err := toml.Unmarshal(data, &tl); err != nil {
		return Manifest{}, fmt.Errorf("parsing manifest: %w", err)
	}

	if !strings.EqualFold(tl.Format, "dolang") {
		return Manifest{}, fmt.Errorf("not a dolang file: format is %q", tl.Format)
	}
	if !strings.EqualFold(tl.Type, "manifest") {
		return Manifest{}, fmt.Errorf("not a manifest file: type is %q", tl.Type)
	}

	return Manifest{Files: tl.Files}, nil
}

// ResolveSources loads the manifest at path and returns the source files it
// names, in order, with nested manifests expanded in place. Returned paths
// are relative to the enclosing manifest's directory, ready to be opened.
func ResolveSources(path string) ([]string, error) {
	return resolveSources(path, nil)
}

func resolveSources(path string, seen []string) ([]string, error) {
	if len(seen) >= MaxRecursionDepth {
		return nil, fmt.Errorf("%s: %w", path, ErrStackOverflow)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", path, err)
	}
	for _, s := range seen {
		if s == abs {
			return nil, fmt.Errorf("%s: %w", path, ErrCircularRef)
		}
	}
	seen = append(seen, abs)

	manif, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	var sources []string
	for _, f := range manif.Files {
		fPath := filepath.Join(dir, f)

		data, err := os.ReadFile(fPath)
		if err != nil {
			return nil, fmt.Errorf("including %q: %w", f, err)
		}

		if IsManifest(data) {
			nested, err := resolveSources(fPath, seen)
			if err != nil {
				return nil, err
			}
			sources = append(sources, nested...)
		} else {
			sources = append(sources, fPath)
		}
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}

	return sources, nil
}

// IsManifest reports whether data begins with a dolang manifest header. It
// is how manifest files are told apart from dolang source files, which are
// not TOML and carry no header.
func IsManifest(data []byte) bool {
	info, err := ScanFileInfo(data)
	if err != nil {
		return false
	}

	return strings.EqualFold(info.Format, "dolang") && strings.EqualFold(info.Type, "manifest")
}

// ScanFileInfo takes the given bytes and attempts to read the common header
// info from them. The bytes are read up to the first instance of a table
// definition header and those bytes are parsed for the info. If there is an
// error reading the info, returns a non-nil error.
func ScanFileInfo(data []byte) (FileInfo, error) {
	// only run the toml parser up to the end of the top-level table
	var topLevelEnd int = -1
	var onNewLine bool
	for b := range data {
		if onNewLine {
			if data[b] == '[' {
				topLevelEnd = b
				break
			}
		}

		if data[b] == '\n' {
			onNewLine = true
		} else if !unicode.IsSpace(rune(data[b])) {
			onNewLine = false
		}
	}

	scanData := data
	if topLevelEnd != -1 {
		scanData = data[:topLevelEnd]
	}

	var info FileInfo
	err := toml.Unmarshal(scanData, &info)
	return info, err
}
