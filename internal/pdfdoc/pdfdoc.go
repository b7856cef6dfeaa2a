// Package pdfdoc implements the merge reader/writer contract on top of
// pdfcpu.
package pdfdoc

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pkg/errors"

	"example.com/mergepdf/internal/merge"
)

// Library opens pdfcpu-backed readers and writers.
type Library struct {
	conf *model.Configuration
}

var _ merge.Library = (*Library)(nil)

// New returns a Library using relaxed validation, which accepts the
// slightly malformed files many producers emit. No bookmarks are added for
// the merged sources.
func New() *Library {
	conf := model.NewDefaultConfiguration()
	conf.Cmd = model.MERGECREATE
	conf.ValidationMode = model.ValidationRelaxed
	conf.CreateBookmarks = false
	return &Library{conf: conf}
}

// ---- reader ----

// reader holds the parsed document. The source bytes are read once, so the
// file may change on disk after OpenReader without affecting the merge.
type reader struct {
	path string
	ctx  *model.Context
}

func (r *reader) Path() string { return r.path }

func (r *reader) PageCount() int {
	if r.ctx == nil {
		return 0
	}
	return r.ctx.PageCount
}

func (r *reader) Close() error {
	if r.ctx == nil {
		return errors.Errorf("%s: reader already released", r.path)
	}
	r.ctx = nil
	return nil
}

// OpenReader reads and validates path.
func (l *Library) OpenReader(path string) (merge.Reader, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "unreadable pdf")
	}
	ctx, err := api.ReadAndValidate(bytes.NewReader(b), l.conf)
	if err != nil {
		return nil, errors.Wrap(err, "unreadable or malformed pdf")
	}
	return &reader{path: path, ctx: ctx}, nil
}

// ---- writer ----

// writer grows a destination context: the first appended document becomes
// the destination and later ones are merged into it.
type writer struct {
	out  string
	tmp  string
	dest *model.Context
	done bool
}

// OpenWriter reserves a temp file beside path. Nothing appears at path until
// Close succeeds.
func (l *Library) OpenWriter(path string) (merge.Writer, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, errors.Wrap(err, "cannot create output")
	}
	tmp := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return nil, errors.Wrap(err, "cannot create output")
	}
	return &writer{out: path, tmp: tmp}, nil
}

func (w *writer) Append(r merge.Reader) error {
	if w.done {
		return errors.New("writer already finalized")
	}
	src, ok := r.(*reader)
	if !ok {
		return errors.Errorf("%s: reader not opened by pdfdoc", r.Path())
	}
	if src.ctx == nil {
		return errors.Errorf("%s: reader already released", src.path)
	}

	if w.dest == nil {
		if src.ctx.XRefTable.Version() < model.V20 {
			src.ctx.XRefTable.EnsureVersionForWriting()
		}
		w.dest = src.ctx
		return nil
	}
	if err := pdfcpu.MergeXRefTables(filepath.Base(src.path), src.ctx, w.dest, false, false); err != nil {
		return errors.Wrap(err, "copy pages")
	}
	return nil
}

func (w *writer) Close() error {
	if w.done {
		return errors.New("writer already finalized")
	}
	w.done = true

	if w.dest == nil {
		_ = os.Remove(w.tmp)
		return errors.New("nothing to write")
	}
	if w.dest.Configuration.OptimizeBeforeWriting {
		if err := api.OptimizeContext(w.dest); err != nil {
			_ = os.Remove(w.tmp)
			return errors.Wrap(err, "optimize output")
		}
	}
	if err := api.WriteContextFile(w.dest, w.tmp); err != nil {
		_ = os.Remove(w.tmp)
		return errors.Wrap(err, "write output")
	}
	if err := os.Rename(w.tmp, w.out); err != nil {
		_ = os.Remove(w.tmp)
		return errors.Wrap(err, "move output into place")
	}
	return nil
}

func (w *writer) Abort() error {
	if w.done {
		return nil
	}
	w.done = true
	w.dest = nil
	if err := os.Remove(w.tmp); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
