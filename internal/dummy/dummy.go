// Package dummy writes small labelled PDFs for trying out merges.
package dummy

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
)

// Samples are the documents written by WriteSamples, in merge order.
var Samples = []struct {
	Name  string
	Label string
}{
	{"one.pdf", "ONE ONE ONE"},
	{"two.pdf", "TWO TWO TWO"},
	{"three.pdf", "THREE THREE THREE"},
}

// A4 in points.
const (
	A4Width  = 595.28
	A4Height = 841.89
)

// Write creates an A4 PDF at path with the given number of pages, each
// showing "<label> - Page n". Missing parent directories are created.
func Write(path, label string, pages int) error {
	return WriteSized(path, label, pages, A4Width)
}

// WriteSized is Write with every page given the same width in points, so
// documents can be told apart by their media boxes after a merge.
func WriteSized(path, label string, pages int, width float64) error {
	if pages < 1 {
		return errors.Errorf("pages must be positive, got %d", pages)
	}
	if width <= 0 {
		return errors.Errorf("width must be positive, got %v", width)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create parent directory")
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 24)
	size := gofpdf.SizeType{Wd: width, Ht: A4Height}
	for i := 1; i <= pages; i++ {
		pdf.AddPageFormat("P", size)
		pdf.SetXY(20, 40)
		pdf.Cell(0, 30, fmt.Sprintf("%s - Page %d", label, i))
	}
	return errors.Wrapf(pdf.OutputFileAndClose(path), "write %s", path)
}

// WriteSamples writes one.pdf, two.pdf and three.pdf into dir and returns
// their paths.
func WriteSamples(dir string) ([]string, error) {
	paths := make([]string, 0, len(Samples))
	for _, s := range Samples {
		p := filepath.Join(dir, s.Name)
		if err := Write(p, s.Label, 1); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
