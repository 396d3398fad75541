package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/filedrive/filedrive/internal/model"
	"github.com/filedrive/filedrive/internal/repository"
	"github.com/filedrive/filedrive/internal/storage"
)

// PurgeService permanently removes files whose deletion mark has outlived
// the retention window. Each file is its own unit of work: blob first, then
// record, with a marker in between so an interrupted purge can be retried.
type PurgeService struct {
	fileRepo  repository.FileRepository
	storage   storage.Storage
	email     *EmailService
	retention time.Duration

	now func() time.Time
}

func NewPurgeService(fileRepo repository.FileRepository, storage storage.Storage, email *EmailService, retention time.Duration) *PurgeService {
	return &PurgeService{
		fileRepo:  fileRepo,
		storage:   storage,
		email:     email,
		retention: retention,
		now:       time.Now,
	}
}

// PurgeExpired removes all files with should_delete set whose mark is at
// least the retention window old. Files are processed concurrently; one
// file's failure does not abort the others. Returns the number purged.
func (s *PurgeService) PurgeExpired(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.retention)

	files, err := s.fileRepo.Expired(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to select expired files: %w", err)
	}
	if len(files) == 0 {
		return 0, nil
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		purged int
		failed int
	)

	for _, file := range files {
		wg.Add(1)
		go func(file *model.File) {
			defer wg.Done()

			err := s.purgeOne(file)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				slog.Error("failed to purge file", "file_id", file.ID, "org_id", file.OrgID, "error", err)
				return
			}
			purged++
		}(file)
	}
	wg.Wait()

	slog.Info("purge completed", "purged", purged, "failed", failed, "cutoff", cutoff)

	if s.email != nil && purged+failed > 0 {
		err := s.email.SendPurgeReport(purged, failed)
		if err != nil {
			slog.Warn("failed to send purge report", "error", err)
		}
	}

	return purged, nil
}

// purgeOne deletes the blob, records that it is gone, then deletes the
// record. The blob_deleted marker keeps a retry from re-deleting the blob
// after a crash between the two steps.
func (s *PurgeService) purgeOne(file *model.File) error {
	if !file.BlobDeleted {
		err := s.storage.Delete(file.BlobKey)
		if err != nil {
			return fmt.Errorf("failed to delete blob: %w", err)
		}
		err = s.fileRepo.SetBlobDeleted(file.ID)
		if err != nil {
			return fmt.Errorf("failed to mark blob deleted: %w", err)
		}
	}

	err := s.fileRepo.Delete(file.ID)
	if err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}
	return nil
}

// RunDaily blocks, firing PurgeExpired once per day at the given UTC time,
// until the context is canceled. Intended to be started from main as a
// goroutine; external schedulers can invoke cmd/purge instead.
func (s *PurgeService) RunDaily(ctx context.Context, hourUTC, minuteUTC int) {
	for {
		next := nextRunAt(s.now().UTC(), hourUTC, minuteUTC)
		timer := time.NewTimer(time.Until(next))

		slog.Info("purge scheduled", "next_run", next)

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			_, err := s.PurgeExpired(ctx)
			if err != nil {
				slog.Error("scheduled purge failed", "error", err)
			}
		}
	}
}

// nextRunAt returns the next instant at hour:minute UTC strictly after now.
func nextRunAt(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
