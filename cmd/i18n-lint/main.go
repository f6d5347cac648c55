// i18n-lint cross-references translation keys used in view files with the
// keys defined in locale catalogs.
//
// Usage:
//
//	i18n-lint <command> [flags]
//
// Run "i18n-lint help" for a list of commands.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// errChecksFailed is returned when linting completed but the result fails
// the build.
var errChecksFailed = errors.New("checks failed")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
