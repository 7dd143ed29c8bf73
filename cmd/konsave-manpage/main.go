package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/konsave/cmd/konsave"
	"github.com/arthur-debert/konsave/internal/version"
)

func main() {
	rootCmd := konsave.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "KONSAVE",
		Section: "1",
		Source:  "konsave " + version.Version,
		Manual:  "konsave manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
