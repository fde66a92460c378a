package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/usm-dti/event-tracker-api/internal/models"
)

// ToastService holds the queue of live notifications. Every pushed toast gets
// its own expiry timer; dismissing a toast cancels its timer. Multiple toasts
// coexist and expire independently.
type ToastService struct {
	ttl     time.Duration
	logger  *zap.Logger
	metrics *MetricsService

	mu     sync.Mutex
	toasts []models.Toast
	timers map[string]*time.Timer
	closed bool
}

// NewToastService constructs the queue with the given lifetime per toast.
// metrics may be nil.
func NewToastService(ttl time.Duration, logger *zap.Logger, metrics *MetricsService) *ToastService {
	if ttl <= 0 {
		ttl = 3200 * time.Millisecond
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ToastService{
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
		timers:  make(map[string]*time.Timer),
	}
}

// Push appends a toast and schedules its expiry.
func (s *ToastService) Push(message, severity string) models.Toast {
	toast := models.Toast{
		ID:      uuid.NewString(),
		Message: message,
		Type:    severity,
	}
	s.metrics.RecordToast(severity)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return toast
	}
	s.toasts = append(s.toasts, toast)
	s.timers[toast.ID] = time.AfterFunc(s.ttl, func() {
		s.expire(toast.ID)
	})
	return toast
}

// List returns the live toasts in arrival order.
func (s *ToastService) List() []models.Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Toast(nil), s.toasts...)
}

// Dismiss removes a toast before its TTL elapses. Unknown ids are ignored;
// the toast may have expired between render and click.
func (s *ToastService) Dismiss(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
}

func (s *ToastService) expire(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
}

func (s *ToastService) removeLocked(id string) {
	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}
	for i := range s.toasts {
		if s.toasts[i].ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return
		}
	}
}

// Close stops all pending timers. Used on shutdown.
func (s *ToastService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	s.toasts = nil
}
