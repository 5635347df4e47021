package checkpoint

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestRunLock_SecondAcquireFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.txt")

	first := NewRunLock(path)
	if err := first.Acquire(); err != nil {
		t.Fatalf("first Acquire() error = %v", err)
	}
	defer first.Release()

	second := NewRunLock(path)
	err := second.Acquire()
	if !errors.Is(err, ErrLocked) {
		t.Errorf("second Acquire() error = %v, want ErrLocked", err)
	}
}

func TestRunLock_ReleaseAllowsReacquire(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkpoint.txt")

	first := NewRunLock(path)
	if err := first.Acquire(); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if err := first.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}

	second := NewRunLock(path)
	if err := second.Acquire(); err != nil {
		t.Errorf("Acquire() after release error = %v", err)
	}
	second.Release()
}

func TestRunLock_ReleaseWithoutAcquire(t *testing.T) {
	lock := NewRunLock(filepath.Join(t.TempDir(), "checkpoint.txt"))

	if err := lock.Release(); err != nil {
		t.Errorf("Release() without Acquire error = %v, want nil", err)
	}
}
