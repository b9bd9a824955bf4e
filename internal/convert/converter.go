package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"lacquer/internal/encoder"
	"lacquer/internal/fileutil"
	"lacquer/internal/logging"
	"lacquer/internal/plan"
	"lacquer/internal/verify"
)

// Converter executes conversion jobs against a single resolved backend.
type Converter struct {
	logger  *slog.Logger
	runner  encoder.Runner
	backend encoder.Backend
	planner plan.Planner
	opts    Options
}

// New constructs a Converter. The backend is detected once per run and
// shared by every job.
func New(logger *slog.Logger, runner encoder.Runner, backend encoder.Backend, planner plan.Planner, opts Options) *Converter {
	if logger == nil {
		logger = logging.NewNop()
	}
	if runner == nil {
		runner = encoder.NewRunner()
	}
	return &Converter{
		logger:  logger,
		runner:  runner,
		backend: backend,
		planner: planner,
		opts:    opts,
	}
}

// Convert runs one file through the full job: skip check, dry-run
// short-circuit, backend invocation, cleanup on failure, optional
// verification, optional source deletion. Every failure becomes a Result.
func (c *Converter) Convert(ctx context.Context, src string) Result {
	dst := c.planner.Destination(src)

	if c.shouldSkip(src, dst) {
		return Result{Source: src, Dest: dst, OK: true, Message: messageSkip}
	}

	if c.opts.DryRun {
		return Result{Source: src, Dest: dst, OK: true, Message: messageDry}
	}

	if err := fileutil.EnsureParentDir(dst); err != nil {
		return c.fail(src, dst, fmt.Sprintf("create output directory: %v", err))
	}

	var args []string
	switch c.backend.Kind {
	case encoder.KindAfconvert:
		// afconvert has no overwrite flag; clear the way ourselves.
		if c.opts.Overwrite {
			if _, err := os.Stat(dst); err == nil {
				if err := os.Remove(dst); err != nil {
					return c.fail(src, dst, fmt.Sprintf("remove existing output: %v", err))
				}
			}
		}
		args = encoder.AfconvertArgs(src, dst)
	default:
		args = encoder.FFmpegArgs(src, dst, c.opts.Overwrite, c.opts.KeepArtwork)
	}

	c.logger.Debug("invoking encoder",
		logging.String("source", src),
		logging.String("dest", dst),
		logging.String("backend", string(c.backend.Kind)))

	out, err := c.runner.CombinedOutput(ctx, c.backend.Path, args)
	if err != nil {
		// A failed invocation can leave a useless empty output behind.
		fileutil.RemoveIfEmpty(dst)
		return c.fail(src, dst, invocationMessage(c.backend.Path, out, err))
	}

	if c.opts.Verify {
		if result, failed := c.verifyConversion(ctx, src, dst); failed {
			return result
		}
	}

	// The conversion (and verification, when requested) succeeded; losing
	// the source delete is worth only a warning at this point.
	if c.opts.DeleteOriginal {
		if err := os.Remove(src); err != nil {
			c.logger.Warn("could not delete original",
				logging.String("source", src),
				logging.Error(err))
		}
	}

	return Result{Source: src, Dest: dst, OK: true, Message: messageOK}
}

// shouldSkip reports whether dst is already up to date. A destination that
// vanishes mid-check counts as absent, not as an error.
func (c *Converter) shouldSkip(src, dst string) bool {
	if c.opts.Overwrite {
		return false
	}
	dstInfo, err := os.Stat(dst)
	if err != nil {
		return false
	}
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false
	}
	return !dstInfo.ModTime().Before(srcInfo.ModTime())
}

func (c *Converter) verifyConversion(ctx context.Context, src, dst string) (Result, bool) {
	if c.opts.VerifyFFmpeg == "" {
		c.logger.Warn("verification requested but ffmpeg is unavailable, skipping",
			logging.String("source", src))
		return Result{}, false
	}

	srcSum, err := verify.Digest(ctx, c.runner, c.opts.VerifyFFmpeg, src)
	if err != nil {
		return c.fail(src, dst, fmt.Sprintf("verify failed: %v", err)), true
	}
	dstSum, err := verify.Digest(ctx, c.runner, c.opts.VerifyFFmpeg, dst)
	if err != nil {
		return c.fail(src, dst, fmt.Sprintf("verify failed: %v", err)), true
	}
	if srcSum != dstSum {
		_ = os.Remove(dst)
		return c.fail(src, dst, "verify mismatch: PCM digests differ"), true
	}
	return Result{}, false
}

func (c *Converter) fail(src, dst, message string) Result {
	return Result{Source: src, Dest: dst, Message: message}
}

func invocationMessage(binary string, out []byte, err error) string {
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Sprintf("command not found: %s", binary)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if detail := strings.TrimSpace(string(out)); detail != "" {
			return detail
		}
		return "conversion failed"
	}
	return err.Error()
}
