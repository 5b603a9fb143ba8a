package cmd

import (
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"packscan/archive"
)

// NewExtractCmd creates and returns the extract subcommand for the
// packscan CLI. It unpacks archives through a validated temporary root.
func NewExtractCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "extract ARCHIVE DEST",
		Short: "Safely extract an archive to a destination directory",
		Long: `Extract an archive into DEST, which must not already exist.

Members are first unpacked into a scoped temporary directory where every
name and link target is validated against the extraction root, then the
validated tree is moved into DEST. A single traversal payload anywhere in
the archive aborts the whole extraction with nothing written.`,
		Args: cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			runExtract(args[0], args[1], verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}

func runExtract(src, dest string, verbose bool) {
	if err := extractTo(src, dest, verbose); err != nil {
		log.Fatalf("Failed to extract %s: %v", src, err)
	}
	fmt.Printf("Extracted %s to %s\n", src, dest)
}

func extractTo(src, dest string, verbose bool) error {
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf("destination %s already exists", dest)
	} else if !os.IsNotExist(err) {
		return err
	}

	extraction, err := archive.Extract(src)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Printf("Validated %d members\n", len(extraction.Members))
		for _, name := range extraction.Members {
			fmt.Printf("  %s\n", name)
		}
	}

	// Rename is cheap when DEST shares a filesystem with the temporary
	// root; fall back to copying when it does not.
	if err := os.Rename(extraction.Root, dest); err != nil {
		if cpErr := copyTree(extraction.Root, dest); cpErr != nil {
			os.RemoveAll(dest)
			extraction.Close()
			return cpErr
		}
	}
	return extraction.Close()
}

func copyTree(src, dest string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		info, err := d.Info()
		if err != nil {
			return err
		}
		switch {
		case d.IsDir():
			return os.MkdirAll(target, 0o755)
		case info.Mode()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		default:
			return copyFile(path, target, info.Mode().Perm())
		}
	})
}

func copyFile(src, dest string, mode fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
