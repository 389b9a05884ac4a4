package transcribe

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"subtrans/internal/logging"
	"subtrans/internal/services"
	"subtrans/internal/subtitles"
)

type fakeBackend struct {
	entries []subtitles.Entry
	err     error
	calls   []string
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Transcribe(_ context.Context, audioPath string) ([]subtitles.Entry, error) {
	f.calls = append(f.calls, audioPath)
	return f.entries, f.err
}

func writeAudio(t *testing.T, dir, id string) string {
	t.Helper()
	path := filepath.Join(dir, id+AudioExtension)
	if err := os.WriteFile(path, []byte("fake audio"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	return path
}

func TestAudioPath(t *testing.T) {
	got, err := AudioPath("tmp", "episode-01")
	if err != nil {
		t.Fatalf("AudioPath: %v", err)
	}
	if got != filepath.Join("tmp", "episode-01.m4a") {
		t.Fatalf("unexpected path %q", got)
	}
	for _, bad := range []string{"", " ", ".", "..", "a/b", `a\b`, "../secret"} {
		if _, err := AudioPath("tmp", bad); err == nil {
			t.Fatalf("expected error for id %q", bad)
		} else if !errors.Is(err, services.ErrValidation) {
			t.Fatalf("expected validation marker for %q, got %v", bad, err)
		}
	}
}

func TestTranscriberRunWritesSRT(t *testing.T) {
	dir := t.TempDir()
	audio := writeAudio(t, dir, "ep1")
	backend := &fakeBackend{entries: []subtitles.Entry{
		{Index: 1, Start: subtitles.FromSeconds(90.5), End: subtitles.FromSeconds(92.0), Text: "Hello"},
	}}

	var out bytes.Buffer
	entries, err := New(backend, dir, logging.NewNop()).Run(context.Background(), "ep1", &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if len(backend.calls) != 1 || backend.calls[0] != audio {
		t.Fatalf("unexpected backend calls %v", backend.calls)
	}
	want := "1\n00:01:30,500 --> 00:01:32,000\nHello\n\n"
	if out.String() != want {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestTranscriberRunMissingAudio(t *testing.T) {
	backend := &fakeBackend{}
	var out bytes.Buffer
	_, err := New(backend, t.TempDir(), nil).Run(context.Background(), "missing", &out)
	if !errors.Is(err, ErrAudioNotFound) {
		t.Fatalf("expected ErrAudioNotFound, got %v", err)
	}
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found marker, got %v", err)
	}
	if len(backend.calls) != 0 {
		t.Fatal("backend must not run without audio")
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestTranscriberRunRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "ep1"+AudioExtension), 0o755); err != nil {
		t.Fatal(err)
	}
	_, err := New(&fakeBackend{}, dir, nil).Run(context.Background(), "ep1", &bytes.Buffer{})
	if !errors.Is(err, ErrAudioNotFound) {
		t.Fatalf("expected ErrAudioNotFound, got %v", err)
	}
}

func TestTranscriberRunBackendFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	writeAudio(t, dir, "ep1")
	backend := &fakeBackend{
		entries: []subtitles.Entry{{Index: 1, End: time.Second, Text: "partial"}},
		err:     errors.New("upload failed"),
	}
	var out bytes.Buffer
	if _, err := New(backend, dir, nil).Run(context.Background(), "ep1", &out); err == nil {
		t.Fatal("expected error")
	}
	if out.Len() != 0 {
		t.Fatalf("expected no partial output, got %q", out.String())
	}
}

func TestTranscriberRunEmptyTranscript(t *testing.T) {
	dir := t.TempDir()
	writeAudio(t, dir, "silence")
	var out bytes.Buffer
	entries, err := New(&fakeBackend{}, dir, nil).Run(context.Background(), "silence", &out)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(entries) != 0 || out.Len() != 0 {
		t.Fatalf("expected empty document, got %d entries and %q", len(entries), out.String())
	}
}

func TestTranscriberRunLogsCompletion(t *testing.T) {
	dir := t.TempDir()
	writeAudio(t, dir, "ep1")
	var logs bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Writer: &logs})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	backend := &fakeBackend{entries: []subtitles.Entry{{Index: 1, End: time.Second, Text: "hi"}}}
	if _, err := New(backend, dir, logger).Run(context.Background(), "ep1", &bytes.Buffer{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(logs.String(), `"event_type":"transcription_complete"`) {
		t.Fatalf("expected completion log, got %s", logs.String())
	}
}
