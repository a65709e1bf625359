//go:build !windows

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAcquireLock_Success(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "picker.lock")

	fd, err := acquireLock(lockPath)
	if err != nil {
		t.Fatalf("acquireLock failed: %v", err)
	}
	defer releaseLock(fd)

	info, err := os.Stat(lockPath)
	if err != nil {
		t.Fatalf("lock file was not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		t.Errorf("lock file should not be group/world accessible, got %o", perm)
	}
}

func TestAcquireLock_SecondInstanceFails(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "picker.lock")

	fd1, err := acquireLock(lockPath)
	if err != nil {
		t.Fatalf("first acquireLock failed: %v", err)
	}

	// flock locks belong to the open file description, so a second open in
	// the same process conflicts just like another process would.
	fd2, err := acquireLock(lockPath)
	if err == nil {
		releaseLock(fd2)
		releaseLock(fd1)
		t.Fatal("expected second acquireLock to fail, but it succeeded")
	}

	releaseLock(fd1)

	fd3, err := acquireLock(lockPath)
	if err != nil {
		t.Fatalf("acquireLock after release failed: %v", err)
	}
	releaseLock(fd3)
}

func TestAcquireLock_MissingDirectory(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "missing", "picker.lock")
	if fd, err := acquireLock(lockPath); err == nil {
		releaseLock(fd)
		t.Fatal("expected failure when the lock directory does not exist")
	}
}

func TestReleaseLock_InvalidFd(t *testing.T) {
	// Releasing with -1 should not panic.
	releaseLock(-1)
}

func TestCheckTTY_Missing(t *testing.T) {
	if err := checkTTY(filepath.Join(t.TempDir(), "tty")); err == nil {
		t.Error("expected error for a missing terminal device")
	}
}

func TestCheckTermWidth_NotATerminal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := checkTermWidth(path); err == nil {
		t.Error("expected error for a regular file")
	}
}
