// Command mkdummy writes one.pdf, two.pdf and three.pdf into a directory
// (default "data") so mergepdf can be tried without real documents.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"example.com/mergepdf/internal/dummy"
)

var rootCmd = &cobra.Command{
	Use:          "mkdummy [dir]",
	Short:        "Write sample PDFs for trying out mergepdf",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "data"
		if len(args) == 1 {
			dir = args[0]
		}
		pages, err := cmd.Flags().GetInt("pages")
		if err != nil {
			return err
		}

		for _, s := range dummy.Samples {
			p := filepath.Join(dir, s.Name)
			if err := dummy.Write(p, s.Label, pages); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func main() {
	rootCmd.Flags().Int("pages", 1, "pages per sample document")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
