package cmd

import (
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"packscan/filekind"
)

// NewClassifyCmd creates and returns the classify subcommand for the
// packscan CLI. It reports the detected kind of files and trees.
func NewClassifyCmd() *cobra.Command {
	var summaryOnly bool

	cmd := &cobra.Command{
		Use:   "classify PATH...",
		Short: "Classify files as source, binary, archive, or other",
		Long: `Classify files by sniffing their content.

Each PATH may be a single file or a directory, which is walked recursively.
Every file reports one of SOURCE, BINARY, ARCHIVE, or OTHER. Classification
reads content only; file extensions play no part.`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runClassify(args, summaryOnly)
		},
	}

	cmd.Flags().BoolVar(&summaryOnly, "summary", false, "Print only the per-kind totals")

	return cmd
}

func runClassify(paths []string, summaryOnly bool) {
	counts := make(map[filekind.Kind]int)
	total := 0

	for _, path := range paths {
		err := filepath.WalkDir(path, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			kind, err := filekind.Detect(path)
			if err != nil {
				return fmt.Errorf("classifying %s: %w", path, err)
			}
			counts[kind]++
			total++
			if !summaryOnly {
				fmt.Printf("%-8s %s\n", kind, path)
			}
			return nil
		})
		if err != nil {
			log.Fatalf("Failed to classify %s: %v", path, err)
		}
	}

	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)

	fmt.Printf("\nTotal files: %d\n", total)
	for _, kind := range kinds {
		fmt.Printf("  %-8s %d\n", kind, counts[filekind.Kind(kind)])
	}
}
