package session

import "fmt"

// Status is the lifecycle position of a content slot.
type Status int

const (
	StatusIdle    Status = iota // Nothing requested yet, or reset
	StatusLoading               // Waiting for the ticketed request
	StatusReady                 // Payload available
	StatusFailed                // Last request failed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Ticket identifies one request issued for a slot. Only the most recently
// issued ticket may commit.
type Ticket uint64

// Slot is a single content-fetch target with its own loading lifecycle.
// The zero value is idle. A Slot is owned by the UI loop and is not safe for
// concurrent use.
type Slot[T any] struct {
	status Status
	ticket Ticket
	key    string
	data   T
	err    error
}

// Begin enters loading for key, drops any previous payload or error, and
// returns the ticket the result must present.
func (s *Slot[T]) Begin(key string) Ticket {
	var zero T
	s.ticket++
	s.status = StatusLoading
	s.key = key
	s.data = zero
	s.err = nil
	return s.ticket
}

// Commit stores data if t is the current ticket. It reports whether the
// payload was accepted.
func (s *Slot[T]) Commit(t Ticket, data T) bool {
	if !s.current(t) {
		return false
	}
	s.status = StatusReady
	s.data = data
	return true
}

// Fail records err if t is the current ticket.
func (s *Slot[T]) Fail(t Ticket, err error) bool {
	if !s.current(t) {
		return false
	}
	s.status = StatusFailed
	s.err = err
	return true
}

// Reset returns the slot to idle. Requests still in flight become stale.
func (s *Slot[T]) Reset() {
	var zero T
	s.ticket++
	s.status = StatusIdle
	s.key = ""
	s.data = zero
	s.err = nil
}

func (s *Slot[T]) current(t Ticket) bool {
	return s.status == StatusLoading && t == s.ticket
}

// Status returns the slot's lifecycle position.
func (s *Slot[T]) Status() Status { return s.status }

// Loading reports whether a request is outstanding.
func (s *Slot[T]) Loading() bool { return s.status == StatusLoading }

// Data returns the payload. It is the zero value unless the slot is ready.
func (s *Slot[T]) Data() T { return s.data }

// Err returns the failure of the last request, if any.
func (s *Slot[T]) Err() error { return s.err }

// Key returns what the current request or payload is for, such as a topic.
func (s *Slot[T]) Key() string { return s.key }
