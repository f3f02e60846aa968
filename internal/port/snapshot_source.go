package port

import (
	"context"

	"hawafiz/internal/domain"
)

// SnapshotSource hands the engine its four input collections. The production
// implementation is the Qoyod API client; tests substitute a mock.
type SnapshotSource interface {
	FetchSnapshot(ctx context.Context, window domain.DateWindow) (*domain.Snapshot, error)
}
