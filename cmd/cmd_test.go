package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every XDG and WORDIZ location at a temp dir and returns
// the database path.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("WORDIZ_DB", "")
	t.Setenv("WORDIZ_LOG_LEVEL", "error")
	require.NoError(t, resetCmd.Flags().Set("yes", "false"))
	return filepath.Join(dir, "wordiz.db")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRateAndStats(t *testing.T) {
	db := isolate(t)

	out, err := execute(t, "rate", "cat", "easy", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "cat rated easy  +30 XP")
	assert.Contains(t, out, "→ mastered")

	out, err = execute(t, "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Total XP:       30")
	assert.Contains(t, out, "Mastered words: 1")
	assert.Contains(t, out, "Badges: 1")
	assert.Contains(t, out, "none yet")
}

func TestRateRejectsBadInput(t *testing.T) {
	db := isolate(t)

	_, err := execute(t, "rate", "cat", "meh", "--db", db)
	assert.Error(t, err)

	_, err = execute(t, "rate", "zebra", "easy", "--db", db)
	assert.Error(t, err)
}

func TestReset(t *testing.T) {
	db := isolate(t)
	_, err := execute(t, "rate", "dog", "hard", "--db", db)
	require.NoError(t, err)

	_, err = execute(t, "reset", "--db", db)
	require.Error(t, err)

	out, err := execute(t, "reset", "--yes", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "All learner data deleted.")

	out, err = execute(t, "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Total XP:       0")
}

func TestResetConfirmationDoesNotCarryOver(t *testing.T) {
	db := isolate(t)
	_, err := execute(t, "reset", "--yes", "--db", db)
	require.NoError(t, err)

	db = isolate(t)
	_, err = execute(t, "reset", "--db", db)
	assert.Error(t, err, "a fresh run without --yes must ask for confirmation")
}

func TestWords(t *testing.T) {
	isolate(t)

	out, err := execute(t, "words", "--category", "sounds", "--difficulty", "")
	require.NoError(t, err)
	assert.Contains(t, out, "rhythm")
	assert.Contains(t, out, "never asked")

	corpus := filepath.Join(t.TempDir(), "words.json")
	require.NoError(t, os.WriteFile(corpus, []byte(`{"words":[
		{"id":"moon","text":"moon","category":"space","difficulty":"easy"}
	]}`), 0o644))

	out, err = execute(t, "words", "validate", corpus)
	require.NoError(t, err)
	assert.Contains(t, out, "ok (1 words)")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"words":[{"id":"x"}]}`), 0o644))
	_, err = execute(t, "words", "validate", bad)
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "wordiz")
}
