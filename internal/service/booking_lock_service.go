package service

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// Interval for cleaning up stale mutexes
	lockCleanupInterval = 10 * time.Minute

	// How long a mutex must be unused before cleanup
	lockStaleThreshold = 10 * time.Minute
)

// BookingLockService serializes the conflict-check-then-insert critical
// section per doctor. Two concurrent booking requests for the same doctor
// can otherwise both pass the overlap check and both insert.
//
// The lock is in-process only; the exclusion constraint on the
// appointments table covers concurrent writers from other instances.
//
// Call Stop() during graceful shutdown.
type BookingLockService struct {
	log *logrus.Logger

	// Per-doctor mutex
	doctorMu sync.Map // map[uuid.UUID]*mutexWithTimestamp

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// NewBookingLockService creates a BookingLockService and starts the
// background mutex cleanup goroutine.
func NewBookingLockService(log *logrus.Logger) *BookingLockService {
	svc := &BookingLockService{
		log:      log,
		stopChan: make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.cleanupMutexMapLoop()

	return svc
}

// Lock acquires the per-doctor mutex, blocking until it is available
func (s *BookingLockService) Lock(doctorID uuid.UUID) {
	for {
		mt := s.getDoctorMutex(doctorID)
		mt.mu.Lock()
		mt.lastUsed.Store(time.Now().Unix())

		// The cleanup goroutine may have deleted this entry between the
		// map load and acquiring the lock; a later caller would then mint
		// a fresh mutex and two holders could coexist. Re-check map
		// membership while holding the lock and retry on the live entry.
		if current, _ := s.doctorMu.LoadOrStore(doctorID, mt); current == mt {
			return
		}
		mt.mu.Unlock()
	}
}

// Unlock releases the per-doctor mutex
func (s *BookingLockService) Unlock(doctorID uuid.UUID) {
	s.getDoctorMutex(doctorID).mu.Unlock()
}

// Stop terminates the cleanup goroutine. Safe to call more than once.
func (s *BookingLockService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("BookingLockService stopped")
	}
}

func (s *BookingLockService) getDoctorMutex(doctorID uuid.UUID) *mutexWithTimestamp {
	mt, _ := s.doctorMu.LoadOrStore(doctorID, &mutexWithTimestamp{})
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

func (s *BookingLockService) cleanupMutexMapLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(lockCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Booking lock cleanup goroutine stopping")
			return
		case <-ticker.C:
			s.cleanupStaleMutexes()
		}
	}
}

func (s *BookingLockService) cleanupStaleMutexes() {
	cutoffTime := time.Now().Add(-lockStaleThreshold).Unix()
	var cleaned int

	s.doctorMu.Range(func(key, value any) bool {
		doctorID, ok := key.(uuid.UUID)
		if !ok {
			return true
		}

		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		// TryLock first - if we can't get the lock, someone is using it.
		// lastUsed is checked inside the lock so a concurrent Lock() call
		// cannot slip in between the check and the delete.
		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoffTime {
				s.doctorMu.Delete(doctorID)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d stale doctor mutexes", cleaned)
	}
}
