package encoder

// FFmpegArgs builds the ffmpeg argument vector converting src to an ALAC
// stream inside dst. The first audio stream is encoded; with keepArtwork the
// first video stream (cover art) is copied through as an attached picture.
// Container metadata is carried over in both shapes.
func FFmpegArgs(src, dst string, overwrite, keepArtwork bool) []string {
	args := []string{"-hide_banner", "-loglevel", "error"}
	if overwrite {
		args = append(args, "-y")
	} else {
		args = append(args, "-n")
	}
	args = append(args, "-i", src, "-map", "0:a:0", "-c:a", "alac")
	if keepArtwork {
		args = append(args, "-map", "0:v?", "-c:v", "copy", "-disposition:v:0", "attached_pic")
	}
	args = append(args, "-map_metadata", "0", "-movflags", "use_metadata_tags", dst)
	return args
}

// AfconvertArgs builds the fixed afconvert invocation. afconvert has no
// overwrite flag; the caller removes a pre-existing dst before invoking it.
func AfconvertArgs(src, dst string) []string {
	return []string{"-f", "m4af", "-d", "alac", src, dst}
}

// DecodeArgs builds the ffmpeg invocation that decodes the first audio
// stream of path to raw signed 32-bit little-endian PCM on stdout, used for
// lossless verification.
func DecodeArgs(path string) []string {
	return []string{"-v", "error", "-i", path, "-map", "0:a:0", "-f", "s32le", "-"}
}
