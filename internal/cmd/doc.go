// Package cmd provides the command-line interface implementation for packscan.
//
// This package contains all the subcommand implementations for the packscan CLI
// tool. It uses the Cobra library for command structure and Fang for beautiful
// styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator and entry point
//   - scan: Package fingerprinting and document generation
//   - inspect: Archive detection and member listing
//   - extract: Safe archive extraction to a destination directory
//   - classify: File kind classification by content
//   - list, show: Stored document browsing
//   - verify: Stored document consistency checking
//   - seed: Sample package tree generation
//   - version: Build information reporting
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. The root command coordinates all
// subcommands.
//
// The package leverages the scan package for fingerprinting, the archive
// package for extraction, and the store package for document persistence.
package cmd
