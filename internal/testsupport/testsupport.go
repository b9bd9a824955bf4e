// Package testsupport provides fixtures shared by tests, chiefly fake
// encoder binaries that stand in for ffmpeg.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	const chunkSize = 32 * 1024
	buf := make([]byte, chunkSize)
	for i := range buf {
		buf[i] = 0x42
	}

	remaining := size
	for remaining > 0 {
		toWrite := int64(chunkSize)
		if remaining < toWrite {
			toWrite = remaining
		}
		if _, err := f.Write(buf[:toWrite]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= toWrite
	}
}

// Script writes an executable shell script and returns its path.
func Script(t testing.TB, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write script %s: %v", name, err)
	}
	return path
}

// FakeFFmpeg returns a script that mimics the two ffmpeg invocations lacquer
// makes: encoding (copies the -i argument to the final argument) and PCM
// decoding (a trailing "-" streams the -i argument to stdout). Sources whose
// path contains "unencodable" fail with a diagnostic on stderr.
func FakeFFmpeg(t testing.TB, dir string) string {
	t.Helper()

	const body = `#!/bin/sh
PATH="$PATH:/usr/bin:/bin"
prev=""
src=""
last=""
for arg in "$@"; do
  if [ "$prev" = "-i" ]; then src="$arg"; fi
  prev="$arg"
  last="$arg"
done
case "$src" in
  *unencodable*) echo "synthetic encoder failure" >&2; exit 1 ;;
esac
if [ "$last" = "-" ]; then
  cat "$src"
  exit 0
fi
cp "$src" "$last"
`
	return Script(t, dir, "ffmpeg", body)
}

// FailingFFmpeg returns a script that always exits nonzero with stderr text.
func FailingFFmpeg(t testing.TB, dir string) string {
	t.Helper()

	return Script(t, dir, "ffmpeg", "#!/bin/sh\necho \"encoder exploded\" >&2\nexit 1\n")
}
