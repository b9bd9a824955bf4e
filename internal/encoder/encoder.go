package encoder

import (
	"errors"
	"log/slog"
	"os/exec"
	"strings"

	"lacquer/internal/logging"
)

// Kind identifies an encoder backend.
type Kind string

const (
	// KindFFmpeg is the primary backend with full metadata and artwork
	// support.
	KindFFmpeg Kind = "ffmpeg"
	// KindAfconvert is the macOS fallback backend.
	KindAfconvert Kind = "afconvert"
)

// Backend is a resolved encoder choice, detected once per run and shared by
// every job.
type Backend struct {
	Kind Kind
	Path string
}

// ErrNotFound reports that neither backend is available.
var ErrNotFound = errors.New("ffmpeg or afconvert not found; install one of them")

// ResolveFFmpeg locates the ffmpeg binary. An explicit value is used only
// when it resolves to an executable; otherwise ffmpeg is searched on PATH.
func ResolveFFmpeg(explicit string) (string, bool) {
	name := strings.TrimSpace(explicit)
	if name == "" {
		name = "ffmpeg"
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", false
	}
	return path, true
}

func resolveAfconvert() (string, bool) {
	path, err := exec.LookPath("afconvert")
	if err != nil {
		return "", false
	}
	return path, true
}

// Detect chooses the backend for a run. afconvert wins only when explicitly
// preferred or when ffmpeg is missing entirely; its metadata support is
// materially weaker.
func Detect(logger *slog.Logger, preferAfconvert bool, ffmpegPath string) (Backend, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	ffmpeg, ffmpegOK := ResolveFFmpeg(ffmpegPath)
	afconvert, afconvertOK := resolveAfconvert()

	switch {
	case preferAfconvert && afconvertOK:
		return Backend{Kind: KindAfconvert, Path: afconvert}, nil
	case ffmpegOK:
		return Backend{Kind: KindFFmpeg, Path: ffmpeg}, nil
	case afconvertOK:
		logger.Warn("ffmpeg not found, falling back to afconvert",
			logging.String("impact", "metadata and artwork retention will be limited"))
		return Backend{Kind: KindAfconvert, Path: afconvert}, nil
	default:
		return Backend{}, ErrNotFound
	}
}
