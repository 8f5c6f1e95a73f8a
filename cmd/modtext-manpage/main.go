package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/modtext/cmd/modtext"
	"github.com/arthur-debert/modtext/internal/version"
)

func main() {
	rootCmd := modtext.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "MODTEXT",
		Section: "1",
		Source:  "modtext " + version.Version,
		Manual:  "modtext manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
