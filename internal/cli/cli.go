package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"example.com/mergepdf/internal/apperr"
	"example.com/mergepdf/internal/log"
	"example.com/mergepdf/internal/merge"
	"example.com/mergepdf/internal/request"
)

const usageHead = `Usage: mergepdf <input...> -o <output> [-v] [-e]
       mergepdf -h | --help

Merges PDF files into one, in command-line order. An input may be a
directory: it is read recursively, files before subdirectories, each level
sorted by name. Hidden entries are skipped.

`

// ---- tokens ----

// options is what the token walk collects. Anything that is not one of the
// exact flag tokens below is an input path, even when it starts with a dash.
type options struct {
	inputs   []string
	output   string
	flags    []request.Flag
	logLevel string
}

func scanTokens(tokens []string) (options, error) {
	opts := options{logLevel: string(log.LevelWarn)}
	for i := 0; i < len(tokens); i++ {
		switch tok := tokens[i]; tok {
		case "-o", "--output":
			if i+1 >= len(tokens) {
				return opts, apperr.Usage("no output file entered")
			}
			i++
			opts.output = tokens[i]
		case "--log-level":
			if i+1 >= len(tokens) {
				return opts, apperr.Usage("no log level entered")
			}
			i++
			opts.logLevel = tokens[i]
		case "-v", "--verbose":
			opts.flags = append(opts.flags, request.Verbose)
		case "-e", "--pdf-only":
			opts.flags = append(opts.flags, request.PDFOnly)
		default:
			opts.inputs = append(opts.inputs, tok)
		}
	}
	return opts, nil
}

func usageFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("mergepdf", pflag.ContinueOnError)
	fs.StringP("output", "o", "", "the output file; missing parent directories are created")
	fs.BoolP("verbose", "v", false, "list the merged files and the output path")
	fs.BoolP("pdf-only", "e", false, "only take files ending in .pdf from directories")
	fs.String("log-level", string(log.LevelWarn), "log level: debug, info, warn or error")
	fs.BoolP("help", "h", false, "show this help (first argument only)")
	return fs
}

// PrintUsage writes the usage text to w.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageHead)
	fmt.Fprint(w, usageFlags().FlagUsages())
}

// ---- command ----

// Execute runs mergepdf with args (program name excluded). Help as the first
// argument prints usage to stdout and returns nil. Usage errors are returned
// with apperr.KindUsage; the caller prints them along with PrintUsage.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer, lib merge.Library) error {
	if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
		PrintUsage(stdout)
		return nil
	}
	if len(args) < 3 {
		return apperr.Usage("not enough arguments")
	}

	cmd := newRootCmd(lib, stdout, stderr)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// newRootCmd leaves flag parsing to scanTokens: pflag would read "-one.pdf"
// as "-o ne.pdf" and a late "-h" as a help request.
func newRootCmd(lib merge.Library, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "mergepdf <input...> -o <output> [-v] [-e]",
		Short:                 "Merge PDF files and directories into a single PDF",
		DisableFlagsInUseLine: true,
		DisableFlagParsing:    true,
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := scanTokens(args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), lib, opts, stdout, stderr)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) { PrintUsage(c.OutOrStdout()) })

	return cmd
}

func run(ctx context.Context, lib merge.Library, opts options, stdout, stderr io.Writer) error {
	logger, err := log.New(stderr, log.Level(opts.logLevel))
	if err != nil {
		return apperr.Usage("%v", err)
	}
	defer func() { _ = logger.Sync() }()
	ctx = log.With(ctx, logger)

	flags := request.NewFlags(opts.flags...)
	logger.Debug("[args] arguments parsed",
		zap.Strings("inputs", opts.inputs),
		zap.String("output", opts.output),
		zap.Bool("verbose", flags.Has(request.Verbose)),
		zap.Bool("pdfOnly", flags.Has(request.PDFOnly)))

	req, err := request.Resolve(ctx, opts.inputs, opts.output, flags)
	if err != nil {
		return err
	}

	res, err := merge.Run(ctx, lib, req.Inputs(), req.Output())
	if err != nil {
		return err
	}

	if req.Flags().Has(request.Verbose) {
		return merge.WriteManifest(stdout, res.Inputs, res.Output)
	}
	return nil
}
