// Package expand turns a directory argument into the ordered list of files
// it contributes to a merge.
//
// Each level is listed, filtered and sorted by name; its files are emitted
// first, then each subdirectory is expanded in the same order. Hidden entries
// are always skipped. With Options.PDFOnly, files not ending in ".pdf" are
// skipped too.
package expand

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"example.com/mergepdf/internal/apperr"
	"example.com/mergepdf/internal/log"
)

// PDFExtension is matched case-sensitively.
const PDFExtension = ".pdf"

// ErrSymlinkCycle is returned (wrapped as a DirectoryUnreadable failure) when a
// directory link leads back to one of its own ancestors.
var ErrSymlinkCycle = errors.New("symlink cycle")

// Options controls filtering.
type Options struct {
	PDFOnly bool
}

type entry struct {
	name  string
	path  string
	isDir bool
}

// Dir appends every qualifying file under dir to dst and returns the extended
// slice. Paths are absolute. A directory that cannot be listed aborts the
// whole expansion with a DirectoryUnreadable failure.
func Dir(ctx context.Context, dir string, opts Options, dst []string) ([]string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return dst, apperr.New(apperr.KindDirectoryUnreadable, dir, err)
	}
	w := walker{opts: opts, logger: log.From(ctx)}
	return w.walk(absDir, nil, dst)
}

type walker struct {
	opts   Options
	logger *zap.Logger
}

func (w walker) walk(dir string, chain []string, dst []string) ([]string, error) {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return dst, apperr.New(apperr.KindDirectoryUnreadable, dir, err)
	}
	if lo.Contains(chain, resolved) {
		return dst, apperr.New(apperr.KindDirectoryUnreadable, dir, errors.Wrapf(ErrSymlinkCycle, "%s already visited", resolved))
	}
	chain = append(chain, resolved)

	entries, err := w.list(dir)
	if err != nil {
		return dst, apperr.New(apperr.KindDirectoryUnreadable, dir, err)
	}

	// files first, then subdirectories
	var dirs []entry
	for _, e := range entries {
		if e.isDir {
			dirs = append(dirs, e)
			continue
		}
		dst = append(dst, e.path)
	}
	w.logger.Debug("[scan] expanded directory",
		zap.String("dir", dir),
		zap.Int("files", len(entries)-len(dirs)),
		zap.Int("subdirs", len(dirs)))

	for _, d := range dirs {
		if dst, err = w.walk(d.path, chain, dst); err != nil {
			return dst, err
		}
	}
	return dst, nil
}

// list returns the visible children of dir that pass the filter, sorted by
// name.
func (w walker) list(dir string) ([]entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "list directory")
	}

	visible := lo.Filter(des, func(d fs.DirEntry, _ int) bool {
		return isVisibleAndOrdinary(dir, d)
	})

	entries := make([]entry, 0, len(visible))
	for _, d := range visible {
		e := entry{name: d.Name(), path: filepath.Join(dir, d.Name()), isDir: isDir(dir, d)}
		if !e.isDir && w.opts.PDFOnly && !strings.HasSuffix(e.name, PDFExtension) {
			continue
		}
		entries = append(entries, e)
	}

	// byte order; load-bearing for reproducible output
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
	return entries, nil
}

// isDir follows symlinks. A dangling link is treated as a file and fails
// later when the merge tries to read it.
func isDir(dir string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.IsDir()
	}
	fi, err := os.Stat(filepath.Join(dir, d.Name()))
	if err != nil {
		return false
	}
	return fi.IsDir()
}
