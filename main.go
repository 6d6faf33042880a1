// ABOUTME: Entry point for the resume-builder CLI
// ABOUTME: Generates and manages GitHub résumés from the terminal

package main

import (
	"fmt"
	"os"

	"github.com/markalston/resume-builder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
