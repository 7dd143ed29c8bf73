package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/konsave/cmd/konsave"
	"github.com/arthur-debert/konsave/pkg/errors"
	"github.com/arthur-debert/konsave/pkg/ui/output/styles"
)

func main() {
	rootCmd := konsave.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		// Print the error in red
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+errors.UserMessage(err)))
		os.Exit(1)
	}
}
