package convert

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"lacquer/internal/encoder"
	"lacquer/internal/logging"
	"lacquer/internal/plan"
	"lacquer/internal/testsupport"
)

// countingRunner fails loudly if a test that must not spawn subprocesses
// reaches the runner.
type countingRunner struct {
	calls atomic.Int32
}

func (r *countingRunner) CombinedOutput(context.Context, string, []string) ([]byte, error) {
	r.calls.Add(1)
	return nil, nil
}

func (r *countingRunner) Stream(context.Context, string, []string, io.Writer) error {
	r.calls.Add(1)
	return nil
}

func ffmpegConverter(t *testing.T, runner encoder.Runner, ffmpegPath string, planner plan.Planner, opts Options) *Converter {
	t.Helper()
	backend := encoder.Backend{Kind: encoder.KindFFmpeg, Path: ffmpegPath}
	return New(logging.NewNop(), runner, backend, planner, opts)
}

func TestConvertSkipsUpToDateOutput(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "track.flac")
	dst := filepath.Join(tmp, "out", "track.m4a")
	testsupport.WriteFile(t, src, 64)
	testsupport.WriteFile(t, dst, 64)
	newer := time.Now().Add(time.Hour)
	if err := os.Chtimes(dst, newer, newer); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	runner := &countingRunner{}
	c := ffmpegConverter(t, runner, "ffmpeg", plan.Planner{OutputDir: filepath.Join(tmp, "out")}, Options{})

	result := c.Convert(context.Background(), src)
	if result.Class() != ClassSkip {
		t.Fatalf("expected SKIP, got %s (%s)", result.Class(), result.Message)
	}
	if !result.OK {
		t.Fatal("skip must count as success")
	}
	if runner.calls.Load() != 0 {
		t.Fatal("skip check must not invoke the encoder")
	}
}

func TestConvertRunsWhenSourceIsNewer(t *testing.T) {
	tmp := t.TempDir()
	bin := t.TempDir()
	ffmpeg := testsupport.FakeFFmpeg(t, bin)

	src := filepath.Join(tmp, "track.flac")
	dst := filepath.Join(tmp, "out", "track.m4a")
	testsupport.WriteFile(t, src, 64)
	testsupport.WriteFile(t, dst, 64)
	older := time.Now().Add(-time.Hour)
	if err := os.Chtimes(dst, older, older); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	c := ffmpegConverter(t, encoder.NewRunner(), ffmpeg, plan.Planner{OutputDir: filepath.Join(tmp, "out")}, Options{Overwrite: true})
	result := c.Convert(context.Background(), src)
	if result.Class() != ClassOK {
		t.Fatalf("expected OK, got %s (%s)", result.Class(), result.Message)
	}
}

func TestConvertDryRunTouchesNothing(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "track.flac")
	testsupport.WriteFile(t, src, 64)
	outDir := filepath.Join(tmp, "out")

	runner := &countingRunner{}
	c := ffmpegConverter(t, runner, "ffmpeg", plan.Planner{OutputDir: outDir}, Options{DryRun: true, Verify: true, DeleteOriginal: true})

	result := c.Convert(context.Background(), src)
	if result.Class() != ClassDry {
		t.Fatalf("expected DRY, got %s (%s)", result.Class(), result.Message)
	}
	if runner.calls.Load() != 0 {
		t.Fatal("dry-run must not invoke the encoder")
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Fatal("dry-run must not create the output directory")
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatal("dry-run must not delete the source")
	}
}

func TestConvertSuccessWritesDestination(t *testing.T) {
	tmp := t.TempDir()
	bin := t.TempDir()
	ffmpeg := testsupport.FakeFFmpeg(t, bin)

	src := filepath.Join(tmp, "music", "sub", "track.flac")
	testsupport.WriteFile(t, src, 2048)
	planner := plan.Planner{OutputDir: filepath.Join(tmp, "alac"), Root: filepath.Join(tmp, "music")}

	c := ffmpegConverter(t, encoder.NewRunner(), ffmpeg, planner, Options{})
	result := c.Convert(context.Background(), src)
	if !result.OK || result.Message != "ok" {
		t.Fatalf("expected ok result, got %+v", result)
	}
	want := filepath.Join(tmp, "alac", "sub", "track.m4a")
	if result.Dest != want {
		t.Fatalf("dest = %q, want %q", result.Dest, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected destination written: %v", err)
	}
}

func TestConvertFailureRemovesEmptyOutput(t *testing.T) {
	tmp := t.TempDir()
	bin := t.TempDir()
	// Creates an empty destination, then fails.
	ffmpeg := testsupport.Script(t, bin, "ffmpeg", "#!/bin/sh\nlast=\"\"\nfor a in \"$@\"; do last=\"$a\"; done\n: > \"$last\"\necho \"no decoder for stream\" >&2\nexit 1\n")

	src := filepath.Join(tmp, "track.flac")
	testsupport.WriteFile(t, src, 64)

	c := ffmpegConverter(t, encoder.NewRunner(), ffmpeg, plan.Planner{OutputDir: filepath.Join(tmp, "out")}, Options{})
	result := c.Convert(context.Background(), src)
	if result.Class() != ClassFail {
		t.Fatalf("expected FAIL, got %s", result.Class())
	}
	if !strings.Contains(result.Message, "no decoder for stream") {
		t.Fatalf("expected stderr text in message, got %q", result.Message)
	}
	if _, err := os.Stat(result.Dest); !os.IsNotExist(err) {
		t.Fatal("expected empty failed output to be removed")
	}
}

func TestConvertMissingBinary(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "track.flac")
	testsupport.WriteFile(t, src, 64)

	missing := filepath.Join(tmp, "no-such-encoder")
	c := ffmpegConverter(t, encoder.NewRunner(), missing, plan.Planner{OutputDir: filepath.Join(tmp, "out")}, Options{})
	result := c.Convert(context.Background(), src)
	if result.Class() != ClassFail {
		t.Fatalf("expected FAIL, got %s", result.Class())
	}
	if !strings.HasPrefix(result.Message, "command not found: ") {
		t.Fatalf("expected command-not-found message, got %q", result.Message)
	}
}

func TestConvertVerifyMismatchRemovesDestination(t *testing.T) {
	tmp := t.TempDir()
	bin := t.TempDir()
	// Encode mode appends a byte so the decoded streams differ.
	body := `#!/bin/sh
prev=""
src=""
last=""
for arg in "$@"; do
  if [ "$prev" = "-i" ]; then src="$arg"; fi
  prev="$arg"
  last="$arg"
done
if [ "$last" = "-" ]; then
  cat "$src"
  exit 0
fi
cat "$src" > "$last"
printf corrupt >> "$last"
`
	ffmpeg := testsupport.Script(t, bin, "ffmpeg", body)

	src := filepath.Join(tmp, "track.flac")
	testsupport.WriteFile(t, src, 512)

	c := ffmpegConverter(t, encoder.NewRunner(), ffmpeg, plan.Planner{OutputDir: filepath.Join(tmp, "out")}, Options{Verify: true, VerifyFFmpeg: ffmpeg})
	result := c.Convert(context.Background(), src)
	if result.Class() != ClassFail {
		t.Fatalf("expected FAIL, got %s (%s)", result.Class(), result.Message)
	}
	if result.Message != "verify mismatch: PCM digests differ" {
		t.Fatalf("unexpected message %q", result.Message)
	}
	if _, err := os.Stat(result.Dest); !os.IsNotExist(err) {
		t.Fatal("expected mismatched destination to be removed")
	}
}

func TestConvertVerifyRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	bin := t.TempDir()
	ffmpeg := testsupport.FakeFFmpeg(t, bin)

	src := filepath.Join(tmp, "track.flac")
	testsupport.WriteFile(t, src, 512)

	c := ffmpegConverter(t, encoder.NewRunner(), ffmpeg, plan.Planner{OutputDir: filepath.Join(tmp, "out")}, Options{Verify: true, VerifyFFmpeg: ffmpeg})
	result := c.Convert(context.Background(), src)
	if !result.OK {
		t.Fatalf("expected success, got %q", result.Message)
	}
}

func TestConvertVerifyUnavailableSucceedsWithWarning(t *testing.T) {
	tmp := t.TempDir()
	bin := t.TempDir()
	ffmpeg := testsupport.FakeFFmpeg(t, bin)

	src := filepath.Join(tmp, "track.flac")
	testsupport.WriteFile(t, src, 64)

	c := ffmpegConverter(t, encoder.NewRunner(), ffmpeg, plan.Planner{OutputDir: filepath.Join(tmp, "out")}, Options{Verify: true})
	result := c.Convert(context.Background(), src)
	if !result.OK {
		t.Fatalf("expected success when verification is unavailable, got %q", result.Message)
	}
}

func TestConvertDeleteOriginal(t *testing.T) {
	tmp := t.TempDir()
	bin := t.TempDir()
	ffmpeg := testsupport.FakeFFmpeg(t, bin)

	src := filepath.Join(tmp, "track.flac")
	testsupport.WriteFile(t, src, 64)

	c := ffmpegConverter(t, encoder.NewRunner(), ffmpeg, plan.Planner{OutputDir: filepath.Join(tmp, "out")}, Options{DeleteOriginal: true})
	result := c.Convert(context.Background(), src)
	if !result.OK {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatal("expected source to be deleted")
	}
}

func TestConvertAfconvertOverwriteRemovesExisting(t *testing.T) {
	tmp := t.TempDir()
	bin := t.TempDir()
	// afconvert shape: ... src dst, no decode mode.
	afconvert := testsupport.Script(t, bin, "afconvert", "#!/bin/sh\nlast=\"\"\nfor a in \"$@\"; do last=\"$a\"; done\necho converted > \"$last\"\n")

	src := filepath.Join(tmp, "track.flac")
	testsupport.WriteFile(t, src, 64)
	dst := filepath.Join(tmp, "out", "track.m4a")
	testsupport.WriteFile(t, dst, 64)

	backend := encoder.Backend{Kind: encoder.KindAfconvert, Path: afconvert}
	c := New(logging.NewNop(), encoder.NewRunner(), backend, plan.Planner{OutputDir: filepath.Join(tmp, "out")}, Options{Overwrite: true})

	result := c.Convert(context.Background(), src)
	if !result.OK {
		t.Fatalf("expected success, got %q", result.Message)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read rewritten output: %v", err)
	}
	if !strings.Contains(string(data), "converted") {
		t.Fatalf("expected rewritten output, got %q", data)
	}
}
