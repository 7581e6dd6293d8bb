// Package pidfile keeps a single garage server running per PID file.
package pidfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// ErrAlreadyRunning is returned by Acquire when a live process holds the file
var ErrAlreadyRunning = errors.New("server is already running")

// PIDFile guards a path holding the PID of the running server
type PIDFile struct {
	path string
}

// New creates a PIDFile for path. An empty path disables it.
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Acquire writes the current PID, replacing a stale or unreadable file
func (p *PIDFile) Acquire() error {
	if p.path == "" {
		return nil
	}

	if pid, ok := p.read(); ok && pid != os.Getpid() && alive(pid) {
		return fmt.Errorf("%w (PID %d, %s)", ErrAlreadyRunning, pid, p.path)
	}

	data := strconv.Itoa(os.Getpid()) + "\n"
	if err := os.WriteFile(p.path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// Release removes the file if it still holds our PID
func (p *PIDFile) Release() error {
	if p.path == "" {
		return nil
	}
	if pid, ok := p.read(); ok && pid != os.Getpid() {
		return nil
	}
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

func (p *PIDFile) read() (int, bool) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// alive sends signal 0, which only checks that the process exists
func alive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
