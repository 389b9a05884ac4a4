package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency subtrans relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Path        string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// TranscriptionRequirements lists the binaries the local speech backend
// shells out to. They are optional when the hosted backend is selected.
func TranscriptionRequirements(ffmpegCommand string, local bool) []Requirement {
	if strings.TrimSpace(ffmpegCommand) == "" {
		ffmpegCommand = "ffmpeg"
	}
	return []Requirement{
		{Name: "FFmpeg", Command: ffmpegCommand, Description: "Extracts 16kHz mono audio for WhisperX", Optional: !local},
		{Name: "uvx", Command: "uvx", Description: "Runs WhisperX in an isolated Python environment", Optional: !local},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
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
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Path = resolved
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the unavailable statuses that are not optional.
func MissingRequired(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}
