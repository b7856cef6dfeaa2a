package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"example.com/mergepdf/internal/apperr"
	"example.com/mergepdf/internal/cli"
	"example.com/mergepdf/internal/pdfdoc"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code: 0 on success or help, 1 for usage
// errors and missing inputs, 2 for any other failure.
func run(args []string, stdout, stderr io.Writer) int {
	err := cli.Execute(context.Background(), args, stdout, stderr, pdfdoc.New())
	if err == nil {
		return 0
	}

	// Color only when stderr itself is a terminal.
	errStyle := lipgloss.NewRenderer(stderr).NewStyle().Foreground(lipgloss.Color("9"))
	fmt.Fprintln(stderr, errStyle.Render("mergepdf: "+err.Error()))
	if apperr.Is(err, apperr.KindUsage) {
		cli.PrintUsage(stdout)
	}
	return apperr.ExitCode(err)
}
