// Package tags persists tag definitions. UsageCount is always computed
// from the entry_tags join table on read; it is never stored, so it cannot
// drift from the true number of live references.
package tags

import (
	"context"

	"github.com/guncedev/gunce/internal/diary"
)

// Store describes tag persistence for either backend.
type Store interface {
	// Create inserts a tag definition. Name collisions surface as
	// common.ErrStorage from the unique constraint.
	Create(ctx context.Context, t *diary.Tag) (*diary.Tag, error)

	// GetByName returns a tag with its computed usage count, or
	// common.ErrNotFound.
	GetByName(ctx context.Context, name string) (*diary.Tag, error)

	// List returns all tags with computed usage counts, sorted by name.
	List(ctx context.Context) ([]*diary.Tag, error)

	// Delete removes the definition and its entry links.
	Delete(ctx context.Context, id string) error
}
