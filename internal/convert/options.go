package convert

// Options is the immutable configuration snapshot shared by every job in a
// run. It is never mutated after construction, so concurrent jobs read it
// without locking.
type Options struct {
	Overwrite      bool
	DryRun         bool
	Workers        int
	KeepArtwork    bool
	DeleteOriginal bool
	Verify         bool
	// VerifyFFmpeg is the resolved decoder for verification. Empty means
	// verification is unavailable; requested verification is then skipped
	// with a warning instead of failing the job.
	VerifyFFmpeg string
}
