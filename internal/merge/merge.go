// Package merge drives a PDF library to concatenate resolved inputs into one
// output document.
package merge

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"example.com/mergepdf/internal/apperr"
	"example.com/mergepdf/internal/log"
)

// Reader is an open source document.
type Reader interface {
	Path() string
	PageCount() int
	// Close releases the reader's resources.
	Close() error
}

// Writer is an output document in progress.
type Writer interface {
	// Append adds all pages of r, in their original order.
	Append(r Reader) error
	// Close finalizes the output. It is called at most once, and only if
	// every Append succeeded.
	Close() error
	// Abort discards whatever was written so far.
	Abort() error
}

// Library is the PDF collaborator.
type Library interface {
	OpenReader(path string) (Reader, error)
	OpenWriter(path string) (Writer, error)
}

// Result describes a finished merge.
type Result struct {
	Inputs []string
	Output string
	Pages  int
	Size   int64
}

// Run merges inputs, in order, into output. Any failure aborts the run and
// leaves the output unusable.
func Run(ctx context.Context, lib Library, inputs []string, output string) (*Result, error) {
	logger := log.From(ctx)
	if len(inputs) == 0 {
		return nil, apperr.Usage("no input files to merge")
	}

	if err := ensureParentDir(output); err != nil {
		return nil, err
	}

	w, err := lib.OpenWriter(output)
	if err != nil {
		return nil, asMergeIO(output, err)
	}

	res := &Result{Inputs: append([]string(nil), inputs...), Output: output}
	for i, in := range inputs {
		pages, err := appendOne(lib, w, in)
		if err != nil {
			if abortErr := w.Abort(); abortErr != nil {
				err = multierror.Append(err, errors.Wrap(abortErr, "discard partial output"))
			}
			return nil, err
		}
		res.Pages += pages
		logger.Info("[merge] appended input",
			zap.Int("index", i+1),
			zap.String("path", in),
			zap.Int("pages", pages))
	}

	if err := w.Close(); err != nil {
		return nil, asMergeIO(output, err)
	}

	if fi, err := os.Stat(output); err == nil {
		res.Size = fi.Size()
	}
	logger.Info("[merge] merge finished",
		zap.String("output", output),
		zap.Int("inputs", len(inputs)),
		zap.Int("pages", res.Pages),
		zap.String("size", humanize.Bytes(uint64(res.Size))))
	return res, nil
}

// ---- per input ----

// appendOne owns the reader for one input; it is released whether or not
// the append succeeds.
func appendOne(lib Library, w Writer, path string) (pages int, err error) {
	r, err := lib.OpenReader(path)
	if err != nil {
		return 0, asMergeIO(path, err)
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = asMergeIO(path, errors.Wrap(cerr, "release reader"))
		}
	}()

	pages = r.PageCount()
	if err := w.Append(r); err != nil {
		return 0, asMergeIO(path, err)
	}
	return pages, nil
}

func ensureParentDir(output string) error {
	dir, err := filepath.Abs(filepath.Dir(output))
	if err != nil {
		return apperr.New(apperr.KindOutputDirectory, filepath.Dir(output), errors.Wrap(err, "output directory could not be resolved"))
	}

	fi, err := os.Stat(dir)
	switch {
	case err == nil && fi.IsDir():
		return nil
	case err == nil:
		return apperr.New(apperr.KindOutputDirectory, dir, errors.New("output parent exists and is not a directory"))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperr.New(apperr.KindOutputDirectory, dir, errors.Wrap(err, "output directory could not be created"))
	}
	return nil
}

func asMergeIO(path string, err error) error {
	if apperr.KindOf(err) != apperr.KindUnknown {
		return err
	}
	return apperr.New(apperr.KindMergeIO, path, err)
}

// ---- report ----

// WriteManifest prints the numbered list of merged inputs and the output
// path.
func WriteManifest(w io.Writer, inputs []string, output string) error {
	if _, err := fmt.Fprintln(w, "Merged files:"); err != nil {
		return err
	}
	for i, in := range inputs {
		if _, err := fmt.Fprintf(w, "  %d. %s\n", i+1, in); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Output: %s\n", output)
	return err
}
