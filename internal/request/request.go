// Package request holds the immutable description of one merge: the ordered
// inputs, the output path and the active flags.
package request

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"example.com/mergepdf/internal/apperr"
	"example.com/mergepdf/internal/expand"
	"example.com/mergepdf/internal/log"
)

// Flag is a recognized boolean command-line flag.
type Flag uint8

const (
	Verbose Flag = 1 << iota
	PDFOnly
)

// Flags is a set of Flag values.
type Flags uint8

// NewFlags returns the set holding fs.
func NewFlags(fs ...Flag) Flags {
	var s Flags
	for _, f := range fs {
		s |= Flags(f)
	}
	return s
}

func (s Flags) Has(f Flag) bool { return s&Flags(f) != 0 }

// MergeRequest is built once per invocation and never modified.
type MergeRequest struct {
	inputs []string
	output string
	flags  Flags
}

// Inputs returns a copy of the ordered, absolute input paths.
func (r *MergeRequest) Inputs() []string {
	return append([]string(nil), r.inputs...)
}

func (r *MergeRequest) Output() string { return r.output }
func (r *MergeRequest) Flags() Flags   { return r.flags }

// Resolve walks the positional tokens left to right. Each token must name an
// existing path: directories are expanded in place, files are added by their
// absolute path.
func Resolve(ctx context.Context, tokens []string, output string, flags Flags) (*MergeRequest, error) {
	logger := log.From(ctx)
	if output == "" {
		return nil, apperr.Usage("no output file entered")
	}

	opts := expand.Options{PDFOnly: flags.Has(PDFOnly)}
	var inputs []string
	for _, tok := range tokens {
		fi, err := os.Stat(tok)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, apperr.New(apperr.KindInvalidArgument, tok, errors.New("does not exist"))
			}
			return nil, apperr.New(apperr.KindInvalidArgument, tok, err)
		}

		if fi.IsDir() {
			n := len(inputs)
			if inputs, err = expand.Dir(ctx, tok, opts, inputs); err != nil {
				return nil, err
			}
			logger.Debug("[args] directory argument", zap.String("dir", tok), zap.Int("inputs", len(inputs)-n))
			continue
		}

		abs, err := filepath.Abs(tok)
		if err != nil {
			return nil, apperr.New(apperr.KindInvalidArgument, tok, err)
		}
		inputs = append(inputs, abs)
		logger.Debug("[args] file argument", zap.String("path", abs))
	}

	if len(inputs) == 0 {
		return nil, apperr.Usage("no input files to merge")
	}

	return &MergeRequest{inputs: inputs, output: output, flags: flags}, nil
}
