// Package internal holds the version shared by the CLI.
package internal

// Version is the manualkit release version.
const Version = "0.3.0"
