package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the default config location at an empty temp dir and
// clears the env overrides the tests touch.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{"WORDIZ_DB", "WORDIZ_DB_PATH", "WORDIZ_LOG_LEVEL", "WORDIZ_QUIZ_COUNT", "WORDIZ_QUIZ_MODE", "WORDIZ_TIMING_TICK"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "practice", cfg.Quiz.Mode)
	assert.Equal(t, "mixed", cfg.Quiz.Difficulty)
	assert.Equal(t, 10, cfg.Quiz.Count)
	assert.Equal(t, time.Minute, cfg.Quiz.TimeLimit())
	assert.Equal(t, 1500*time.Millisecond, cfg.Timing.FeedbackDelay)
	assert.Equal(t, 2500*time.Millisecond, cfg.Timing.HintDelay)
	assert.Equal(t, 600*time.Millisecond, cfg.Timing.WrongFlash)
	assert.Equal(t, time.Second, cfg.Timing.Tick)
	assert.Empty(t, cfg.DB.Path)
	assert.Empty(t, cfg.Corpus.Path)
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	p := writeConfig(t, dir, `
log:
  level: debug
  format: text
quiz:
  mode: timed
  count: 5
  time_limit_seconds: 30
  category: animals
timing:
  feedback_delay: 2s
corpus:
  path: /tmp/words.json
`)

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "timed", cfg.Quiz.Mode)
	assert.Equal(t, 5, cfg.Quiz.Count)
	assert.Equal(t, "animals", cfg.Quiz.Category)
	assert.Equal(t, 30*time.Second, cfg.Quiz.TimeLimit())
	assert.Equal(t, 2*time.Second, cfg.Timing.FeedbackDelay)
	assert.Equal(t, 2500*time.Millisecond, cfg.Timing.HintDelay, "unset keys keep defaults")
	assert.Equal(t, "/tmp/words.json", cfg.Corpus.Path)
}

func TestDefaultLocationIsRead(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "wordiz"), 0o755))
	writeConfig(t, filepath.Join(dir, "wordiz"), "quiz:\n  count: 7\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Quiz.Count)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	p := writeConfig(t, dir, "log:\n  level: warn\nquiz:\n  count: 5\n")

	t.Setenv("WORDIZ_LOG_LEVEL", "error")
	t.Setenv("WORDIZ_QUIZ_COUNT", "20")
	t.Setenv("WORDIZ_TIMING_TICK", "250ms")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, 20, cfg.Quiz.Count)
	assert.Equal(t, 250*time.Millisecond, cfg.Timing.Tick)
}

func TestDBEnvAliases(t *testing.T) {
	isolate(t)
	t.Setenv("WORDIZ_DB", "/tmp/legacy.db")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/legacy.db", cfg.DB.Path)

	t.Setenv("WORDIZ_DB_PATH", "/tmp/new.db")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/new.db", cfg.DB.Path, "WORDIZ_DB_PATH wins")
}

func TestDBEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	p := writeConfig(t, dir, "db:\n  path: /tmp/from-file.db\n")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-file.db", cfg.DB.Path)

	t.Setenv("WORDIZ_DB", "/tmp/legacy.db")
	cfg, err = Load(p)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/legacy.db", cfg.DB.Path)
}

func TestExplicitMissingFileFails(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad mode", "quiz:\n  mode: blitz\n"},
		{"zero count", "quiz:\n  count: 0\n"},
		{"too many", "quiz:\n  count: 500\n"},
		{"bad level", "log:\n  level: loud\n"},
		{"bad format", "log:\n  format: xml\n"},
		{"bad difficulty", "quiz:\n  difficulty: brutal\n"},
		{"negative limit", "quiz:\n  time_limit_seconds: -1\n"},
		{"zero tick", "timing:\n  tick: 0s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			p := writeConfig(t, dir, tt.body)
			_, err := Load(p)
			assert.Error(t, err)
		})
	}
}
