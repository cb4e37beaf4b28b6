package ports

import "go.trai.ch/fab/internal/core/domain"

// StampTracker decides whether a task's completion marker is still valid
// and records new completions. It is the sole caching policy of the
// build graph.
//
//go:generate go run go.uber.org/mock/mockgen -source=stamper.go -destination=mocks/mock_stamper.go -package=mocks
type StampTracker interface {
	// Fresh reports whether the task's marker exists, is newer than
	// every predecessor's marker and every declared source input, and
	// the recorded task fingerprint still matches. Group tasks are
	// never fresh; they have no marker.
	Fresh(task *domain.Task, preds []domain.Task) (bool, error)

	// Stamp records successful completion of the task, creating or
	// refreshing its marker with the current time.
	Stamp(task *domain.Task) error

	// Clean removes all markers, recorded state, and working
	// directories. There is no partial clean.
	Clean() error
}
