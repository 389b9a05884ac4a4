package whisperx

// Config holds the [transcription] settings the local backend passes to
// WhisperX. Zero values fall back to DefaultModel and silero VAD on CPU.
type Config struct {
	Model       string
	CUDAEnabled bool
	// VADMethod is "silero" or "pyannote". pyannote needs HFToken.
	VADMethod string
	HFToken   string
}

// Package index locations for uvx. The CUDA index serves torch wheels built
// against CUDA 12.8.
const (
	CUDAIndexURL = "https://download.pytorch.org/whl/cu128"
	PypiIndexURL = "https://pypi.org/simple"
)

// Decoding settings. Short chunks and a low VAD onset keep quiet dialogue
// lines from being merged into long cues.
const (
	DefaultModel      = "large-v3-turbo"
	BatchSize         = "4"
	ChunkSize         = "15"
	VADOnset          = "0.08"
	VADOffset         = "0.07"
	BeamSize          = "10"
	BestOf            = "10"
	Temperature       = "0.0"
	Patience          = "1.0"
	SegmentResolution = "sentence"
	OutputFormat      = "json"
)

const (
	CPUDevice      = "cpu"
	CUDADevice     = "cuda"
	CPUComputeType = "float32"
)

const (
	VADMethodPyannote = "pyannote"
	VADMethodSilero   = "silero"
)

// Command names for external tools.
const (
	UVXCommand    = "uvx"
	FFmpegCommand = "ffmpeg"
)
