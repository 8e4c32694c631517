package document

import (
	"strconv"
	"sync"
	"time"
)

// IDSource hands out creation-timestamp ids: decimal Unix milliseconds,
// strictly increasing for the lifetime of the source.
type IDSource struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewIDSource creates an IDSource reading the wall clock.
func NewIDSource() *IDSource {
	return &IDSource{now: time.Now}
}

// NewIDSourceWithClock creates an IDSource reading now. Used by tests.
func NewIDSourceWithClock(now func() time.Time) *IDSource {
	return &IDSource{now: now}
}

// Next returns a fresh id.
func (s *IDSource) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := s.now().UnixMilli()
	if ms <= s.last {
		ms = s.last + 1
	}
	s.last = ms
	return strconv.FormatInt(ms, 10)
}
