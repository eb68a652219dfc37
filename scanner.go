package twml

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/afero"
)

// ScanStats tracks file scanning statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files kept after filtering
	FilesSkipped    int // Files skipped by exclude patterns or .gitignore
}

// scanner expands glob patterns below a root directory. Paths it returns
// are slash-separated and relative to the root.
type scanner struct {
	fs               afero.Fs
	root             string
	iofs             fs.FS
	respectGitignore bool
	gitignore        *ignore.GitIgnore
}

func newScanner(fsys afero.Fs, root string, respectGitignore bool) *scanner {
	return &scanner{
		fs:               fsys,
		root:             root,
		iofs:             afero.NewIOFS(afero.NewBasePathFs(fsys, root)),
		respectGitignore: respectGitignore,
	}
}

// loadGitIgnore compiles root/.gitignore. A missing or unreadable file
// means nothing is ignored.
func loadGitIgnore(fsys afero.Fs, root string) *ignore.GitIgnore {
	data, err := afero.ReadFile(fsys, filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return ignore.CompileIgnoreLines(strings.Split(string(data), "\n")...)
}

// scan expands include patterns, drops anything matched by exclude or
// .gitignore and returns the sorted, deduplicated file list. The
// .gitignore is re-read on every scan so edits to it take effect.
func (s *scanner) scan(include, exclude []string) ([]string, ScanStats, error) {
	var stats ScanStats
	if s.respectGitignore {
		s.gitignore = loadGitIgnore(s.fs, s.root)
	}
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range include {
		pattern = normalizePattern(pattern)
		if !doublestar.ValidatePattern(pattern) {
			return nil, stats, errors.WithHint(
				errors.Newf("invalid glob pattern %q", pattern),
				"patterns use doublestar syntax, e.g. **/*.html")
		}

		matches, err := doublestar.Glob(s.iofs, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, stats, errors.Wrapf(err, "glob %q", pattern)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++

			if s.shouldSkip(match, exclude) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	sort.Strings(files)
	return files, stats, nil
}

// shouldSkip applies the exclude patterns first, then .gitignore.
func (s *scanner) shouldSkip(rel string, exclude []string) bool {
	for _, pattern := range exclude {
		if ok, _ := matchPattern(pattern, rel); ok {
			return true
		}
	}
	return s.gitignore != nil && s.gitignore.MatchesPath(rel)
}

// readFile reads a path returned by scan.
func (s *scanner) readFile(rel string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.abs(rel))
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", rel)
	}
	return data, nil
}

func (s *scanner) abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

// normalizePattern converts OS separators and strips a leading "./".
func normalizePattern(pattern string) string {
	pattern = filepath.ToSlash(pattern)
	pattern = strings.TrimPrefix(pattern, "./")
	return path.Clean(pattern)
}

func matchPattern(pattern, rel string) (bool, error) {
	return doublestar.Match(normalizePattern(pattern), rel)
}
