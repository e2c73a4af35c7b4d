// Package entries contains the diary entry persistence adapters: a local
// SQLite-backed store carrying sync bookkeeping and a remote
// PostgreSQL-backed store acting as the reconciliation target. Both expose
// the same logical CRUD contract so the facade can treat them uniformly.
package entries

import (
	"context"
	"time"

	"github.com/guncedev/gunce/internal/diary"
)

// Filter narrows List results. Zero values mean "no constraint".
type Filter struct {
	// From/To bound entry_date inclusively.
	From time.Time
	To   time.Time

	// Tag keeps entries carrying the named tag.
	Tag string

	// Sentiment keeps entries with the given label.
	Sentiment diary.Sentiment

	// FavoritesOnly keeps starred entries.
	FavoritesOnly bool

	// Search is a case-insensitive substring match over title and content.
	Search string
}

// Store is the operation set shared by the local and remote adapters.
// Implementations wrap driver failures as common.ErrStorage and report a
// missing id as common.ErrNotFound.
type Store interface {
	// Create validates, derives and inserts a new entry, generating an id
	// when the caller did not supply one. The stored record is returned.
	Create(ctx context.Context, e *diary.Entry) (*diary.Entry, error)

	// GetByID returns a live entry or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*diary.Entry, error)

	// List returns live entries matching f, newest entry_date first.
	List(ctx context.Context, f Filter) ([]*diary.Entry, error)

	// Update rewrites a live entry, recomputing derived fields and bumping
	// updated_at. Missing id yields common.ErrNotFound.
	Update(ctx context.Context, e *diary.Entry) (*diary.Entry, error)
}

// LocalStore is the embedded store. Deletion is two-phase: SoftDelete
// leaves a tombstone so the removal can propagate to the remote store,
// HardDelete finalizes it afterwards.
type LocalStore interface {
	Store

	// SoftDelete marks the entry as deleted and hides it from GetByID/List.
	SoftDelete(ctx context.Context, id string) error

	// HardDelete physically removes a row that is already a tombstone.
	HardDelete(ctx context.Context, id string) error

	// ListUnsynced returns every row whose sync_status is not 'synced':
	// pending creates/updates and deletion tombstones alike.
	ListUnsynced(ctx context.Context) ([]*diary.Entry, error)

	// MarkSynced records that the entry matches the remote store.
	MarkSynced(ctx context.Context, id string) error
}

// RemoteStore is the hosted store. It carries no sync bookkeeping and
// deletes in a single step.
type RemoteStore interface {
	Store

	// Delete removes the row immediately.
	Delete(ctx context.Context, id string) error

	// Upsert inserts or overwrites by id; used by reconciliation so that
	// re-pushing an already-synced entry is a no-op.
	Upsert(ctx context.Context, e *diary.Entry) error
}
