package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/guncedev/gunce/internal/common"
	"github.com/guncedev/gunce/internal/diary"
)

// SyncReport summarizes one reconciliation pass.
type SyncReport struct {
	// Pushed counts pending creates and updates written to the remote store.
	Pushed int `json:"pushed"`
	// Deleted counts tombstones propagated and finalized.
	Deleted int `json:"deleted"`
	// Failed counts rows whose reconciliation errored; they stay unsynced
	// and will be retried on the next pass.
	Failed int `json:"failed"`
}

// Sync reconciles the local store against the remote one. Pending rows are
// upserted remotely and marked synced; tombstones are deleted remotely and
// then finalized locally. Each row is handled independently so one failure
// does not abort the pass, and a second run over the same state is a no-op.
func (s *DiaryService) Sync(ctx context.Context) (*SyncReport, error) {
	if s.local == nil || s.remote == nil {
		return nil, common.ErrNoRemote
	}

	unsynced, err := s.local.ListUnsynced(ctx)
	if err != nil {
		return nil, err
	}

	report := &SyncReport{}
	var errs []error
	for _, e := range unsynced {
		if err := s.syncOne(ctx, e, report); err != nil {
			report.Failed++
			errs = append(errs, fmt.Errorf("entry %s: %w", e.ID, err))
		}
	}

	s.logger.Info(ctx, "sync finished",
		"pushed", report.Pushed, "deleted", report.Deleted, "failed", report.Failed)
	return report, errors.Join(errs...)
}

func (s *DiaryService) syncOne(ctx context.Context, e *diary.Entry, report *SyncReport) error {
	switch e.SyncStatus {
	case diary.SyncStatusDeleted:
		// tolerate a row the remote never saw or already dropped
		if err := s.remote.Delete(ctx, e.ID); err != nil && !errors.Is(err, common.ErrNotFound) {
			return err
		}
		if err := s.local.HardDelete(ctx, e.ID); err != nil {
			return err
		}
		report.Deleted++
		return nil

	case diary.SyncStatusPending:
		if err := s.remote.Upsert(ctx, remoteCopy(e)); err != nil {
			return err
		}
		if err := s.local.MarkSynced(ctx, e.ID); err != nil {
			return err
		}
		report.Pushed++
		return nil
	}

	return fmt.Errorf("unexpected sync status %q", e.SyncStatus)
}

// remoteCopy strips local-only bookkeeping before the entry crosses over.
func remoteCopy(e *diary.Entry) *diary.Entry {
	c := e.Clone()
	c.SyncStatus = ""
	return c
}
