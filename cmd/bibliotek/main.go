// Package main provides the bibliotek CLI, a personal-library catalog
// manager over an embedded SQLite store.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
