package keylock

import "sync"

// KeyLock hands out one mutex per integer key so callers can serialize
// check-then-write sequences against a single aggregate (e.g. one truck's
// allocations) without a global lock.
//
// Mutexes are created on first use and retained for the process lifetime;
// the key space here (trucks) is small and stable.
type KeyLock struct {
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func New() *KeyLock {
	return &KeyLock{locks: make(map[int]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns the matching unlock func.
func (k *KeyLock) Lock(key int) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
