package services

import "sync"

// ReportLocks serializes mutations per report plus id allocation globally.
// Every mutating operation on a report's ledgers runs under the lock for that
// report id, which keeps the per-report counters monotonic and gap-free when
// the host handles requests concurrently. One instance is shared by all
// engine services.
type ReportLocks struct {
	mu    sync.Mutex
	locks map[uint64]*sync.Mutex
	alloc sync.Mutex
}

func NewReportLocks() *ReportLocks {
	return &ReportLocks{locks: make(map[uint64]*sync.Mutex)}
}

// Lock acquires the mutation lock for a report id and returns the unlock.
func (l *ReportLocks) Lock(reportID uint64) func() {
	l.mu.Lock()
	m, ok := l.locks[reportID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[reportID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// LockAllocator acquires the global id-allocation lock used by submission.
func (l *ReportLocks) LockAllocator() func() {
	l.alloc.Lock()
	return l.alloc.Unlock
}
