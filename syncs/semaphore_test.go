package syncs

import "testing"

func TestSemaphore(t *testing.T) {
	sem := NewSemaphore(1)
	if !sem.TryAcquire() {
		t.Fatal()
	}
	if sem.TryAcquire() {
		t.Fatal("should be held")
	}
	sem.Release()
	sem.Acquire()
	if sem.TryAcquire() {
		t.Fatal("should be held")
	}
	sem.Release()
}
