package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"packscan/config"
	"packscan/store"
)

// NewListCmd creates and returns the list subcommand for the packscan CLI.
// It lists the identifiers of all recorded scan documents.
func NewListCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded scan documents",
		Long: `List the identifiers of all scan documents in the store.

Pass an identifier to the show command to display a document.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			runList(verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Include package names and codes")

	return cmd
}

func runList(verbose bool) {
	cfg := config.Load()
	st, err := store.Open(cfg.StoreDir)
	if err != nil {
		log.Fatalf("Failed to open store at %s: %v", cfg.StoreDir, err)
	}

	ids, err := st.List()
	if err != nil {
		log.Fatalf("Failed to list documents: %v", err)
	}
	if len(ids) == 0 {
		fmt.Printf("No documents in %s\n", st.Dir())
		return
	}

	for _, id := range ids {
		if !verbose {
			fmt.Println(id)
			continue
		}
		res, err := st.Load(id)
		if err != nil {
			log.Printf("Warning: failed to load %s: %v", id, err)
			continue
		}
		fmt.Printf("%s\n  package %s, %d files, code %s\n",
			id, res.Package, res.FileCount, res.VerificationCode)
	}
}
