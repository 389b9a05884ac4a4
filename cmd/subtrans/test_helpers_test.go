package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	audioDir   string
}

// setupCLITestEnv isolates HOME and the credential variables so the user's
// own configuration never leaks into a test.
func setupCLITestEnv(t *testing.T, configBody string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "home")
	audioDir := filepath.Join(base, "audio")
	for _, dir := range []string{home, audioDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	t.Setenv("HOME", home)
	for _, key := range []string{"OPENAI_API_KEY", "OPENROUTER_API_KEY", "LMSTUDIO_API_KEY", "TRANSLATION_MODEL", "HF_HUB_CACHE", "HF_HOME"} {
		t.Setenv(key, "")
	}

	body := strings.ReplaceAll(configBody, "{{audio_dir}}", audioDir)
	body = strings.ReplaceAll(body, "{{base}}", base)
	configPath := filepath.Join(base, "config.toml")
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return &cliTestEnv{baseDir: base, configPath: configPath, audioDir: audioDir}
}

func runCLI(t *testing.T, env *cliTestEnv, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	if env != nil {
		args = append([]string{"--config", env.configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q to contain %q", haystack, needle)
	}
}
