package cmd

import (
	"archive/tar"
	"crypto/rand"
	"fmt"
	"io"
	"log"
	"math/big"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/spf13/cobra"
)

// The generated tree mimics a small source release: code under src,
// headers under include, prose under docs, fixtures under test.
var (
	seedDirs = []string{
		"src",
		"src/core",
		"src/io",
		"include",
		"docs",
		"test",
	}

	seedExts = []string{".c", ".h", ".go", ".py", ".sh", ".md", ".json", ".txt"}
)

// NewSeedCmd creates and returns the seed subcommand for the packscan CLI.
// It generates a sample package tree for exercising the scanner.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		fileCount  int
		archive    bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a sample package tree for testing",
		Long: `Generate a sample package tree for testing packscan functionality.

Creates a source-release-shaped directory (src, include, docs, test) filled
with small files. Content is drawn from a fixed pool so the tree contains
duplicate files, which exercises hash deduplication. With --archive the
tree is also packed into a gzip-compressed tarball next to the output
directory.`,
		Run: func(cmd *cobra.Command, args []string) {
			runSeed(outputPath, fileCount, archive, verbose)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "c", 200, "Number of files to generate")
	cmd.Flags().BoolVarP(&archive, "archive", "a", false, "Also pack the tree into <output>.tar.gz")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

func runSeed(outputPath string, fileCount int, archive, verbose bool) {
	if verbose {
		fmt.Printf("Generating %d sample files in %s\n", fileCount, outputPath)
	}

	// Create output directory
	if err := os.MkdirAll(outputPath, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	// Generate pool of 20 UUIDs; reuse guarantees duplicate contents
	contentPool := make([]string, 20)
	for i := 0; i < 20; i++ {
		contentPool[i] = uuid.New().String()
	}

	filesCreated := 0
	dirFileCounts := make(map[string]int)

	for filesCreated < fileCount {
		dirIndex, _ := rand.Int(rand.Reader, big.NewInt(int64(len(seedDirs))))
		dirPath := filepath.Join(outputPath, seedDirs[dirIndex.Int64()])

		if err := os.MkdirAll(dirPath, 0755); err != nil {
			log.Printf("Warning: Failed to create directory %s: %v", dirPath, err)
			continue
		}

		// Generate random filename (lowercase hex)
		filenameNum, _ := rand.Int(rand.Reader, big.NewInt(0xFFFFFFFF))
		extIndex, _ := rand.Int(rand.Reader, big.NewInt(int64(len(seedExts))))
		ext := seedExts[extIndex.Int64()]
		filename := fmt.Sprintf("%08x%s", filenameNum.Int64(), ext)
		filePath := filepath.Join(dirPath, filename)

		// Skip if file already exists
		if _, err := os.Stat(filePath); err == nil {
			continue
		}

		// Select random content from pool; shell files get a shebang
		// so content detection sees them as scripts
		poolIndex, _ := rand.Int(rand.Reader, big.NewInt(int64(len(contentPool))))
		content := contentPool[poolIndex.Int64()] + "\n"
		if ext == ".sh" {
			content = "#!/bin/sh\necho " + content
		}

		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			log.Printf("Warning: Failed to write file %s: %v", filePath, err)
			continue
		}

		dirFileCounts[dirPath]++
		filesCreated++

		if verbose && filesCreated%100 == 0 {
			fmt.Printf("Created %d/%d files...\n", filesCreated, fileCount)
		}
	}

	if verbose {
		fmt.Printf("Successfully created %d files\n", filesCreated)
		fmt.Printf("Files distributed across %d directories\n", len(dirFileCounts))
	}

	if archive {
		archivePath := outputPath + ".tar.gz"
		if err := packTree(outputPath, archivePath); err != nil {
			log.Fatalf("Failed to pack tree: %v", err)
		}
		fmt.Printf("Packed tree into %s\n", archivePath)
	}
}

// packTree writes the tree rooted at root into a gzip-compressed tarball.
func packTree(root, dest string) error {
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if info.IsDir() {
			hdr.Name += "/"
		}

		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		_, err = io.Copy(tw, f)
		f.Close()
		return err
	})
	if err != nil {
		return err
	}

	if err := tw.Close(); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	return out.Close()
}
