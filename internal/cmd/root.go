package cmd

import (
	"github.com/spf13/cobra"

	"packscan/version"
)

// NewRootCmd creates and returns the root cobra command for the packscan CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "packscan",
		Short: "packscan - Package fingerprinting and safe archive inspection",
		Long: `packscan fingerprints software packages for provenance tracking.

It walks package trees (plain directories or tar/zip archives), hashes every
file, and condenses the results into verification codes that identify the
package contents and layout. Archive handling is hardened against path
traversal: members are validated against the extraction root before any
bytes reach the disk.

Use subcommands to perform different operations:
  - scan: Fingerprint packages and record scan documents
  - inspect: Show an archive's container format and member listing
  - extract: Safely extract an archive to a destination directory
  - classify: Classify files as source, binary, archive, or other
  - list/show: Browse recorded scan documents
  - verify: Check recorded documents for consistency`,
		Version: version.GetFullVersion(),
	}

	groupScan := "scan"
	groupUtilities := "utilities"

	// Add command groups for better organization
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupScan,
		Title: "Scan Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	scanCmd := NewScanCmd()
	inspectCmd := NewInspectCmd()
	extractCmd := NewExtractCmd()
	classifyCmd := NewClassifyCmd()
	listCmd := NewListCmd()
	showCmd := NewShowCmd()
	verifyCmd := NewVerifyCmd()
	seedCmd := NewSeedCmd()
	versionCmd := NewVersionCmd()

	scanCmd.GroupID = groupScan
	inspectCmd.GroupID = groupScan
	extractCmd.GroupID = groupScan
	classifyCmd.GroupID = groupScan
	listCmd.GroupID = groupUtilities
	showCmd.GroupID = groupUtilities
	verifyCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	// Add subcommands
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
