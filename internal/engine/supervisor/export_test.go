package supervisor

import "time"

// SetClock replaces the supervisor's time source for testing.
func (s *Supervisor) SetClock(now func() time.Time) {
	s.now = now
}
