package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"packscan/config"
	"packscan/filekind"
	"packscan/store"
)

// NewShowCmd creates and returns the show subcommand for the packscan CLI.
// It displays a single recorded scan document.
func NewShowCmd() *cobra.Command {
	var (
		jsonOutput bool
		withFiles  bool
	)

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Display a recorded scan document",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runShow(args[0], jsonOutput, withFiles)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the document as JSON")
	cmd.Flags().BoolVar(&withFiles, "files", false, "Include the per-file hash listing")

	return cmd
}

func runShow(id string, jsonOutput, withFiles bool) {
	cfg := config.Load()
	st, err := store.Open(cfg.StoreDir)
	if err != nil {
		log.Fatalf("Failed to open store at %s: %v", cfg.StoreDir, err)
	}

	res, err := st.Load(id)
	if err != nil {
		log.Fatalf("Failed to load document: %v", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			log.Fatalf("Failed to encode document: %v", err)
		}
		return
	}

	fmt.Printf("Document: %s\n", res.ID)
	fmt.Printf("  Package: %s\n", res.Package)
	fmt.Printf("  Source: %s\n", res.Source)
	fmt.Printf("  Archive kind: %s\n", res.ArchiveKind)
	if res.PackageSHA256 != "" {
		fmt.Printf("  Package sha256: %s\n", res.PackageSHA256)
	}
	fmt.Printf("  Verification code: %s\n", res.VerificationCode)
	fmt.Printf("  Path code: %s\n", res.PathCode)
	fmt.Printf("  Files: %d (%d unique contents, %d bytes)\n",
		res.FileCount, res.UniqueHashCount(), res.TotalSize)
	fmt.Printf("  Scanned: %s (tool %s)\n", res.ScannedAt.Format("2006-01-02 15:04:05 MST"), res.ToolVersion)

	counts := res.KindCounts()
	kinds := make([]filekind.Kind, 0, len(counts))
	for kind := range counts {
		if kind != "" {
			kinds = append(kinds, kind)
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, kind := range kinds {
		fmt.Printf("  %-8s %d\n", kind, counts[kind])
	}

	if withFiles {
		fmt.Println("  Files:")
		for _, f := range res.Files {
			fmt.Printf("    %s  %s\n", f.SHA256, f.Path)
		}
	}
}
