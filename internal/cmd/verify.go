package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"packscan/config"
	"packscan/scan"
	"packscan/store"
)

// NewVerifyCmd creates and returns the verify subcommand for the packscan CLI.
// It provides consistency checking for stored scan documents.
func NewVerifyCmd() *cobra.Command {
	var (
		rescan  bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "verify [ID...]",
		Short: "Check stored scan documents for corruption and consistency",
		Long: `Check stored scan documents for corruption and consistency issues.

This command loads each stored document, verifies its internal structure
(identifier shape, digest lengths, file counts, size totals), and with
--rescan re-fingerprints any document whose source path still exists and
compares the recorded codes against the current contents.

With no arguments every stored document is checked.`,
		Run: func(cmd *cobra.Command, args []string) {
			runVerify(args, rescan, verbose)
		},
	}

	cmd.Flags().BoolVarP(&rescan, "rescan", "r", false, "Re-fingerprint sources that still exist and compare codes")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}

func runVerify(ids []string, rescan, verbose bool) {
	cfg := config.Load()
	st, err := store.Open(cfg.StoreDir)
	if err != nil {
		log.Fatalf("Failed to open store at %s: %v", cfg.StoreDir, err)
	}

	if len(ids) == 0 {
		ids, err = st.List()
		if err != nil {
			log.Fatalf("Failed to list documents: %v", err)
		}
	}

	if verbose {
		fmt.Printf("Verifying %d documents in %s\n", len(ids), st.Dir())
	}

	var totalErrors int
	var totalDocuments int

	for _, id := range ids {
		totalDocuments++
		if verbose {
			fmt.Printf("Verifying document: %s\n", id)
		}

		res, err := st.Load(id)
		if err != nil {
			fmt.Printf("Document %s failed to load: %v\n", id, err)
			totalErrors++
			continue
		}

		errors := validateDocument(res)
		if rescan {
			errors = append(errors, rescanDocument(res, cfg)...)
		}

		if len(errors) > 0 {
			fmt.Printf("Document %s has %d errors:\n", id, len(errors))
			for _, e := range errors {
				fmt.Printf("  - %s\n", e)
			}
			totalErrors += len(errors)
		} else if verbose {
			fmt.Printf("Document %s is valid\n", id)
		}
	}

	fmt.Printf("\nVerification complete:\n")
	fmt.Printf("  Documents checked: %d\n", totalDocuments)
	fmt.Printf("  Total errors: %d\n", totalErrors)

	if totalErrors > 0 {
		os.Exit(1)
	}
}

func validateDocument(res *scan.Result) []string {
	var errors []string

	if res.ID == "" {
		errors = append(errors, "Missing document identifier")
	}

	if !isHex(res.VerificationCode, 40) {
		errors = append(errors, fmt.Sprintf("Malformed verification code: %q", res.VerificationCode))
	}
	if !isHex(res.PathCode, 40) {
		errors = append(errors, fmt.Sprintf("Malformed path code: %q", res.PathCode))
	}

	if res.FileCount != len(res.Files) {
		errors = append(errors, fmt.Sprintf("File count mismatch: recorded %d, listed %d",
			res.FileCount, len(res.Files)))
	}

	var totalSize int64
	for _, f := range res.Files {
		if f.Path == "" {
			errors = append(errors, "File record with empty path")
		}
		if !isHex(f.SHA256, 64) {
			errors = append(errors, fmt.Sprintf("Malformed file hash for %s: %q", f.Path, f.SHA256))
		}
		totalSize += f.Size
	}
	if totalSize != res.TotalSize {
		errors = append(errors, fmt.Sprintf("Total size mismatch: recorded %d, summed %d",
			res.TotalSize, totalSize))
	}

	for _, h := range res.Excluded {
		if !isHex(h, 64) {
			errors = append(errors, fmt.Sprintf("Malformed excluded hash: %q", h))
		}
	}

	return errors
}

// rescanDocument re-fingerprints the recorded source and compares codes.
// Sources that no longer exist are skipped, not flagged.
func rescanDocument(res *scan.Result, cfg config.Config) []string {
	if res.Source == "" {
		return nil
	}
	if _, err := os.Stat(res.Source); os.IsNotExist(err) {
		return nil
	}

	excluded := make(map[string]bool, len(res.Excluded))
	for _, h := range res.Excluded {
		excluded[h] = true
	}

	scanner := &scan.Scanner{Workers: cfg.Workers}
	fresh, err := scanner.ScanPackage(res.Source, excluded)
	if err != nil {
		return []string{fmt.Sprintf("Rescan failed: %v", err)}
	}

	var errors []string
	if fresh.VerificationCode != res.VerificationCode {
		errors = append(errors, fmt.Sprintf("Verification code drift: recorded %s, current %s",
			res.VerificationCode, fresh.VerificationCode))
	}
	if fresh.PathCode != res.PathCode {
		errors = append(errors, fmt.Sprintf("Path code drift: recorded %s, current %s",
			res.PathCode, fresh.PathCode))
	}
	if res.PackageSHA256 != "" && fresh.PackageSHA256 != res.PackageSHA256 {
		errors = append(errors, fmt.Sprintf("Package hash drift: recorded %s, current %s",
			res.PackageSHA256, fresh.PackageSHA256))
	}
	return errors
}

func isHex(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return true
}
