package transcribe

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ModelStatus describes whether a speech model is present in the local
// Hugging Face hub cache.
type ModelStatus struct {
	Repo      string
	Available bool
	Path      string
	Message   string
}

// ModelRepo maps a WhisperX model name to the Hugging Face repository that
// faster-whisper downloads it from. Repository ids pass through unchanged.
func ModelRepo(model string) string {
	model = strings.TrimSpace(model)
	if strings.Contains(model, "/") {
		return model
	}
	switch model {
	case "", "turbo", "large-v3-turbo":
		return "mobiuslabsgmbh/faster-whisper-large-v3-turbo"
	case "distil-large-v3":
		return "Systran/faster-distil-whisper-large-v3"
	default:
		return "Systran/faster-whisper-" + model
	}
}

// CheckLocalModel looks for a downloaded snapshot of repo in cacheDir. A
// missing model is not an error; WhisperX downloads it on first use.
func CheckLocalModel(cacheDir, repo string) (ModelStatus, error) {
	status := ModelStatus{Repo: repo}
	if strings.TrimSpace(cacheDir) == "" {
		return status, errors.New("check model: cache dir required")
	}
	dirName := "models--" + strings.ReplaceAll(repo, "/", "--")
	modelDir := filepath.Join(cacheDir, dirName)

	snapshots, err := os.ReadDir(filepath.Join(modelDir, "snapshots"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			status.Message = "model will be downloaded on first use"
			return status, nil
		}
		return status, fmt.Errorf("check model: read snapshots: %w", err)
	}
	for _, snap := range snapshots {
		if !snap.IsDir() {
			continue
		}
		snapDir := filepath.Join(modelDir, "snapshots", snap.Name())
		files, err := os.ReadDir(snapDir)
		if err != nil || len(files) == 0 {
			continue
		}
		status.Available = true
		status.Path = snapDir
		status.Message = "model cached"
		return status, nil
	}
	status.Message = "incomplete download; model will be fetched on first use"
	return status, nil
}
