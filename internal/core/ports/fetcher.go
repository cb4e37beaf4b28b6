package ports

import (
	"context"

	"go.trai.ch/fab/internal/core/domain"
)

// SourceFetcher downloads source archives into the local cache and
// verifies their checksums.
//
//go:generate go run go.uber.org/mock/mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type SourceFetcher interface {
	// Fetch ensures the archive for src is present in the cache with a
	// matching checksum and returns its path. A cached archive with a
	// matching checksum is not re-downloaded.
	Fetch(ctx context.Context, src *domain.Source) (string, error)
}

// Extractor unpacks a source archive into a destination directory.
type Extractor interface {
	// Extract unpacks the archive at path into dest, guarding against
	// paths escaping dest.
	Extract(path, dest string) error
}
