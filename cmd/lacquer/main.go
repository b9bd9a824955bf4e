package main

import (
	"errors"
	"fmt"
	"os"
)

// Process exit codes. Conversion failures and fatal startup conditions are
// distinguished so scripts can react to each.
const (
	exitJobFailed = 1
	exitUsage     = 2
	exitNoEncoder = 127
)

// exitError carries a specific process exit code out of a cobra command.
type exitError struct {
	code    int
	message string
}

func (e *exitError) Error() string { return e.message }

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			if exitErr.message != "" {
				fmt.Fprintln(os.Stderr, exitErr.message)
			}
			return exitErr.code
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
