package monitor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForFlag polls until the flag reads true or the deadline passes.
func waitForFlag(t *testing.T, flag *Flag) bool {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if flag.TestAndClear() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func watchedFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0600))
	return path
}

func TestFlagTestAndClear(t *testing.T) {
	var f Flag
	assert.False(t, f.TestAndClear())

	f.Set()
	f.Set() // a second event before the poll is absorbed by the level
	assert.True(t, f.TestAndClear())
	assert.False(t, f.TestAndClear())
}

func TestStartMissingPath(t *testing.T) {
	var f Flag
	_, err := Start(filepath.Join(t.TempDir(), "does-not-exist"), &f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch")
}

func TestWriteSetsFlag(t *testing.T) {
	path := watchedFile(t)
	var f Flag

	m, err := Start(path, &f)
	require.NoError(t, err)
	defer m.Stop()

	require.NoError(t, os.WriteFile(path, []byte(`{"claudeAiOauth":{}}`), 0600))
	assert.True(t, waitForFlag(t, &f), "write event should raise the flag")
	assert.False(t, f.TestAndClear(), "flag is a level, cleared until the next event")
}

func TestChmodIgnored(t *testing.T) {
	path := watchedFile(t)
	var f Flag

	m, err := Start(path, &f)
	require.NoError(t, err)
	defer m.Stop()

	require.NoError(t, os.Chmod(path, 0644))
	time.Sleep(200 * time.Millisecond)
	assert.False(t, f.TestAndClear(), "chmod is not a qualifying event")
}

func TestStopSilencesFlag(t *testing.T) {
	path := watchedFile(t)
	var f Flag

	m, err := Start(path, &f)
	require.NoError(t, err)
	m.Stop()
	f.TestAndClear() // drop anything raised before the stop

	require.NoError(t, os.WriteFile(path, []byte(`changed`), 0600))
	time.Sleep(200 * time.Millisecond)
	assert.False(t, f.TestAndClear(), "no event after Stop may set the flag")
}

func TestStopIsIdempotentJoin(t *testing.T) {
	path := watchedFile(t)
	var f Flag

	m, err := Start(path, &f)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		m.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not join the worker")
	}
}
