// Package verify confirms lossless conversion by decoding both sides of a
// conversion to raw PCM and comparing content digests.
package verify

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"lacquer/internal/encoder"
)

// Digest decodes the first audio stream of path to signed 32-bit
// little-endian PCM via ffmpeg and returns the SHA-256 of the raw byte
// stream. Output is hashed as it is produced, so files of any size stay
// within a bounded buffer.
func Digest(ctx context.Context, runner encoder.Runner, ffmpegPath, path string) (string, error) {
	h := sha256.New()
	if err := runner.Stream(ctx, ffmpegPath, encoder.DecodeArgs(path), h); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
