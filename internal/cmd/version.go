package cmd

import (
	"encoding/json"
	"log"
	"os"

	"github.com/spf13/cobra"

	"packscan/version"
)

// NewVersionCmd creates and returns the version subcommand for the
// packscan CLI. It prints detailed build information.
func NewVersionCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show detailed version information",
		Long: `Show the packscan version together with the commit and build date it
was built from. Values come from build flags when set, and from the
embedded module build info otherwise.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runVersion(jsonOut)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print version information as JSON")

	return cmd
}

func runVersion(jsonOut bool) {
	if !jsonOut {
		version.PrintVersion("packscan")
		return
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(version.GetInfo()); err != nil {
		log.Fatalf("Failed to encode version info: %v", err)
	}
}
