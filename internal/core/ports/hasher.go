package ports

import "go.trai.ch/fab/internal/core/domain"

// Hasher computes stable fingerprints of task definitions.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// FingerprintTask hashes everything that defines a task's behavior:
	// kind, commands, environment, dependencies, and payloads. Source
	// file contents are deliberately excluded; file freshness is the
	// stamp tracker's mtime comparison.
	FingerprintTask(task *domain.Task) string
}
