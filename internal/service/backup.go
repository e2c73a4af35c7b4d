package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/guncedev/gunce/internal/diary"
	"github.com/guncedev/gunce/internal/repositories/entries"
)

const archiveVersion = 1

// Archive is the backup file format: a versioned JSON document holding the
// full entry set. Encrypted content travels as the serialized package,
// never as plaintext, so an archive is safe to store off-device.
type Archive struct {
	Version    int            `json:"version"`
	ExportedAt time.Time      `json:"exported_at"`
	Entries    []*diary.Entry `json:"entries"`
}

// Export writes every live entry to w as an indented JSON archive and
// returns the number of entries written.
func (s *DiaryService) Export(ctx context.Context, w io.Writer) (int, error) {
	list, err := s.store().List(ctx, entries.Filter{})
	if err != nil {
		return 0, err
	}

	archive := Archive{
		Version:    archiveVersion,
		ExportedAt: time.Now().UTC(),
		Entries:    list,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(archive); err != nil {
		return 0, fmt.Errorf("failed to encode archive: %w", err)
	}

	s.logger.Info(ctx, "archive exported", "entries", len(list))
	return len(list), nil
}

// Import reads an archive from r and recreates its entries, preserving ids
// and carrying encrypted content over verbatim. Sealed entries stay sealed;
// no password is needed to restore them. Returns the number of entries
// restored before the first failure, if any.
func (s *DiaryService) Import(ctx context.Context, r io.Reader) (int, error) {
	if err := s.guard(); err != nil {
		return 0, err
	}

	var archive Archive
	if err := json.NewDecoder(r).Decode(&archive); err != nil {
		return 0, fmt.Errorf("failed to decode archive: %w", err)
	}
	if archive.Version != archiveVersion {
		return 0, fmt.Errorf("unsupported archive version %d", archive.Version)
	}

	restored := 0
	for _, e := range archive.Entries {
		if _, err := s.store().Create(ctx, e); err != nil {
			return restored, fmt.Errorf("entry %s: %w", e.ID, err)
		}
		restored++
	}

	s.logger.Info(ctx, "archive imported", "entries", restored)
	return restored, nil
}
