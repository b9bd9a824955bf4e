// Package deps reports the availability of the external encoder binaries
// lacquer shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary lacquer relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// EncoderRequirements returns the encoder binaries a run can use. An explicit
// ffmpeg path from configuration or flags replaces the PATH lookup.
func EncoderRequirements(ffmpegPath string) []Requirement {
	ffmpeg := strings.TrimSpace(ffmpegPath)
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	return []Requirement{
		{
			Name:        "ffmpeg",
			Command:     ffmpeg,
			Description: "Primary encoder; full metadata and artwork support",
		},
		{
			Name:        "afconvert",
			Command:     "afconvert",
			Description: "Fallback encoder (macOS); limited metadata support",
			Optional:    true,
		},
	}
}

// Check evaluates the provided requirements and reports availability.
func Check(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Command = resolved
		status.Available = true
		results = append(results, status)
	}
	return results
}
