package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"packscan/archive"
)

// NewInspectCmd creates and returns the inspect subcommand for the
// packscan CLI. It reports an archive's container format and members.
func NewInspectCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "inspect ARCHIVE",
		Short: "Show an archive's container format and member listing",
		Long: `Show the detected container format and raw member listing of an archive.

Detection sniffs file content, never the extension, so a tarball named
.zip still reports as tar. Member names are printed exactly as recorded
in the archive without any path validation; run extract to unpack members
safely.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runInspect(args[0], jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the listing as JSON")

	return cmd
}

func runInspect(path string, jsonOutput bool) {
	kind, members, err := archive.Members(path)
	if err != nil {
		log.Fatalf("Failed to inspect %s: %v", path, err)
	}

	if jsonOutput {
		listing := struct {
			Path    string       `json:"path"`
			Kind    archive.Kind `json:"kind"`
			Members []string     `json:"members,omitempty"`
		}{path, kind, members}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(listing); err != nil {
			log.Fatalf("Failed to encode listing: %v", err)
		}
		return
	}

	if kind == archive.KindNone {
		fmt.Printf("%s: not a supported archive\n", path)
		return
	}
	fmt.Printf("%s: %s archive, %d members\n", path, kind, len(members))
	for _, name := range members {
		fmt.Printf("  %s\n", name)
	}
}
