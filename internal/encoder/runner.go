package encoder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Runner abstracts encoder invocation for testability.
type Runner interface {
	// CombinedOutput runs the command and returns its combined stdout and
	// stderr, alongside any execution error.
	CombinedOutput(ctx context.Context, name string, args []string) ([]byte, error)
	// Stream runs the command, copying stdout into sink. A nonzero exit
	// produces an error carrying the captured stderr text.
	Stream(ctx context.Context, name string, args []string, sink io.Writer) error
}

type execRunner struct{}

// NewRunner returns the os/exec-backed Runner used outside of tests.
func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) CombinedOutput(ctx context.Context, name string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

func (execRunner) Stream(ctx context.Context, name string, args []string, sink io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = sink

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if detail := strings.TrimSpace(stderr.String()); detail != "" {
			return fmt.Errorf("%s: %s", name, detail)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
