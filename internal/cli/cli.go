// Package cli provides the command-line interface for the stock analyzer
package cli

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"
