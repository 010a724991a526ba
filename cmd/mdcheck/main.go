// Package main is the entry point for the mdcheck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/mdcheck/cmd/mdcheck/commands"
	"github.com/thoreinstein/mdcheck/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		// Findings were already reported by the validate command.
		if exitErr.Code != errors.ExitFindings {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if exitErr.Suggestion != "" {
				fmt.Fprintf(os.Stderr, "Hint: %s\n", exitErr.Suggestion)
			}
		}
		os.Exit(exitErr.Code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(errors.ExitUser)
}
