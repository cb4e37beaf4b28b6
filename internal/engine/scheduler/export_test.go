package scheduler

import "go.trai.ch/fab/internal/core/domain"

// Status exposes a task's last observed status for tests.
func (s *Scheduler) Status(name string) TaskStatus {
	return s.getStatus(domain.NewInternedString(name))
}
