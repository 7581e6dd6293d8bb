package pidfile_test

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/parking-garage/internal/infrastructure/pidfile"
)

func TestPIDFile_AcquireAndRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garage.pid")
	p := pidfile.New(path)

	require.NoError(t, p.Acquire())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), strings.TrimSpace(string(data)))

	require.NoError(t, p.Release())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestPIDFile_ReplacesGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garage.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid"), 0o644))

	assert.NoError(t, pidfile.New(path).Acquire())
}

func TestPIDFile_RefusesLiveProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garage.pid")
	// the test runner's parent is alive for the duration of the test
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(os.Getppid())), 0o644))

	err := pidfile.New(path).Acquire()

	assert.ErrorIs(t, err, pidfile.ErrAlreadyRunning)
}

func TestPIDFile_EmptyPathDisabled(t *testing.T) {
	p := pidfile.New("")
	assert.NoError(t, p.Acquire())
	assert.NoError(t, p.Release())
}
