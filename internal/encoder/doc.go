// Package encoder selects the external transcoding backend for a run and
// builds the argument vectors it is invoked with. All real audio work
// happens inside the chosen binary; this package only decides which binary
// runs and how.
package encoder
