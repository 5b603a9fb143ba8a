package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"packscan/archive"
	"packscan/config"
	"packscan/scan"
	"packscan/store"
)

// NewScanCmd creates and returns the scan subcommand for the packscan CLI.
// It fingerprints one or more packages and records the resulting documents.
func NewScanCmd() *cobra.Command {
	var (
		excludeHashes []string
		excludeFiles  []string
		jsonOutput    bool
		noStore       bool
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:   "scan PACKAGE...",
		Short: "Fingerprint packages and record scan documents",
		Long: `Fingerprint one or more packages and record the results.

Each PACKAGE may be a directory or an archive file (tar or zip, optionally
gzip, bzip2, xz, or zstd compressed). Archives are extracted into a scoped
temporary directory that is removed when the scan finishes. The scan hashes
every file, derives the package verification and path codes, and stores the
resulting document unless --no-store is given.

Content hashes listed with --exclude, or computed from files named with
--exclude-file, are left out of the verification codes. Use this to keep a
generated artifact (such as a previously written scan document inside the
tree) from perturbing the code.`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runScan(args, excludeHashes, excludeFiles, jsonOutput, noStore, verbose)
		},
	}

	cmd.Flags().StringArrayVarP(&excludeHashes, "exclude", "x", nil, "Content hash to exclude from verification codes (repeatable)")
	cmd.Flags().StringArrayVar(&excludeFiles, "exclude-file", nil, "File whose content hash is excluded from verification codes (repeatable)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print each scan document as JSON")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "Do not record the scan documents")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}

func runScan(paths, excludeHashes, excludeFiles []string, jsonOutput, noStore, verbose bool) {
	cfg := config.Load()

	excluded := make(map[string]bool)
	for _, h := range excludeHashes {
		excluded[strings.ToLower(h)] = true
	}
	for _, path := range excludeFiles {
		hash, err := scan.HashFile(path)
		if err != nil {
			log.Fatalf("Failed to hash excluded file %s: %v", path, err)
		}
		excluded[hash] = true
	}

	scanner := &scan.Scanner{
		Workers:       cfg.Workers,
		ClassifyKinds: cfg.Classify,
	}
	if cfg.CacheSize > 0 {
		cache, err := scan.NewHashCache(cfg.CacheSize)
		if err != nil {
			log.Fatalf("Failed to create hash cache: %v", err)
		}
		scanner.Cache = cache
	}

	var st *store.Store
	if !noStore {
		var err error
		st, err = store.Open(cfg.StoreDir)
		if err != nil {
			log.Fatalf("Failed to open store at %s: %v", cfg.StoreDir, err)
		}
	}

	for _, path := range paths {
		if verbose {
			fmt.Printf("Scanning %s\n", path)
		}
		res, err := scanner.ScanPackage(path, excluded)
		if err != nil {
			log.Fatalf("Failed to scan %s: %v", path, err)
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				log.Fatalf("Failed to encode scan document: %v", err)
			}
		} else {
			fmt.Printf("%s:\n", path)
			fmt.Printf("  Document ID: %s\n", res.ID)
			fmt.Printf("  Verification code: %s\n", res.VerificationCode)
			fmt.Printf("  Path code: %s\n", res.PathCode)
			fmt.Printf("  Files: %d (%d unique contents, %d bytes)\n",
				res.FileCount, res.UniqueHashCount(), res.TotalSize)
			if res.ArchiveKind != archive.KindNone {
				fmt.Printf("  Archive: %s, sha256 %s\n", res.ArchiveKind, res.PackageSHA256)
			}
			if len(res.Excluded) > 0 {
				fmt.Printf("  Excluded hashes: %d\n", len(res.Excluded))
			}
		}

		if st != nil {
			docPath, err := st.Save(res)
			if err != nil {
				log.Fatalf("Failed to store scan document: %v", err)
			}
			if verbose {
				fmt.Printf("  Stored: %s\n", docPath)
			}
		}
	}
}
