package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/filedrive/filedrive/internal/apperr"
	"github.com/filedrive/filedrive/internal/ctxkeys"
	"github.com/filedrive/filedrive/internal/model"
	"github.com/filedrive/filedrive/internal/repository"
	"github.com/filedrive/filedrive/internal/storage"
)

// Filter narrows a file listing. Filters compose; zero value lists all
// active (not soft-deleted) files in the organization.
type Filter struct {
	Query         string // Case-insensitive substring match on name
	FavoritesOnly bool   // Restrict to the caller's favorited files
	DeletedOnly   bool   // Show only files pending deletion instead of hiding them
	Type          string // Restrict to a single file type
}

// UploadSlot is a short-lived write URL plus the blob key the client must
// report back through Create once the upload succeeded.
type UploadSlot struct {
	UploadURL string `json:"uploadUrl"`
	BlobKey   string `json:"blobKey"`
}

type FileService struct {
	fileRepo     repository.FileRepository
	favoriteRepo repository.FavoriteRepository
	userRepo     repository.UserRepository
	storage      storage.Storage

	now func() time.Time
}

func NewFileService(fileRepo repository.FileRepository, favoriteRepo repository.FavoriteRepository, userRepo repository.UserRepository, storage storage.Storage) *FileService {
	return &FileService{
		fileRepo:     fileRepo,
		favoriteRepo: favoriteRepo,
		userRepo:     userRepo,
		storage:      storage,
		now:          time.Now,
	}
}

// caller resolves the request identity to a user record.
func (s *FileService) caller(ctx context.Context) (*ctxkeys.Identity, *model.User, error) {
	identity := ctxkeys.GetIdentity(ctx)
	if identity == nil {
		return nil, nil, apperr.ErrUnauthenticated
	}

	user, err := s.userRepo.ByTokenIdentifier(identity.TokenIdentifier)
	if err == repository.ErrUserNotFound {
		return nil, nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	return identity, user, nil
}

// RequestUploadSlot mints a presigned write URL for a direct blob upload.
// The client uploads out-of-band, then calls Create with the returned key.
func (s *FileService) RequestUploadSlot(ctx context.Context) (*UploadSlot, error) {
	if ctxkeys.GetIdentity(ctx) == nil {
		return nil, apperr.Unauthenticated("you must be logged in to upload a file")
	}

	key := uuid.New().String()
	url, err := s.storage.PresignUpload(key)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &UploadSlot{UploadURL: url, BlobKey: key}, nil
}

// Create records file metadata after a successful blob upload.
func (s *FileService) Create(ctx context.Context, name, blobKey, fileType, orgID string) (*model.File, error) {
	if ctxkeys.GetIdentity(ctx) == nil {
		return nil, apperr.Unauthenticated("you must be logged in to upload a file")
	}

	if name == "" {
		return nil, apperr.Invalid("file name is required")
	}
	if blobKey == "" {
		return nil, apperr.Invalid("blob key is required")
	}
	if !model.ValidFileType(fileType) {
		return nil, apperr.Invalid("unsupported file type %q", fileType)
	}

	_, user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if !HasOrgAccess(user, orgID) {
		return nil, apperr.Forbidden("you must be a member of the organization")
	}

	now := s.now()
	file := &model.File{
		ID:        uuid.New().String(),
		Name:      name,
		Type:      fileType,
		BlobKey:   blobKey,
		OrgID:     orgID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.fileRepo.Create(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	slog.Info("file created", "file_id", file.ID, "org_id", orgID, "type", fileType)
	return file, nil
}

// List returns the organization's files with download URLs, narrowed by the
// filter. Read paths soft-fail: an unauthenticated or unauthorized caller
// gets an empty result, not an error.
func (s *FileService) List(ctx context.Context, orgID string, filter Filter) ([]model.FileWithURL, error) {
	if ctxkeys.GetIdentity(ctx) == nil {
		return []model.FileWithURL{}, nil
	}

	_, user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}
	if !HasOrgAccess(user, orgID) {
		return []model.FileWithURL{}, nil
	}

	files, err := s.fileRepo.ByOrg(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	if filter.Query != "" {
		q := strings.ToLower(filter.Query)
		files = keep(files, func(f *model.File) bool {
			return strings.Contains(strings.ToLower(f.Name), q)
		})
	}

	if filter.FavoritesOnly {
		favorites, err := s.favoriteRepo.ByUserAndOrg(user.ID, orgID)
		if err != nil {
			return nil, fmt.Errorf("failed to list favorites: %w", err)
		}
		favorited := make(map[string]bool, len(favorites))
		for _, fav := range favorites {
			favorited[fav.FileID] = true
		}
		files = keep(files, func(f *model.File) bool {
			return favorited[f.ID]
		})
	}

	if filter.DeletedOnly {
		files = keep(files, func(f *model.File) bool { return f.ShouldDelete })
	} else {
		files = keep(files, func(f *model.File) bool { return !f.ShouldDelete })
	}

	if filter.Type != "" {
		files = keep(files, func(f *model.File) bool { return f.Type == filter.Type })
	}

	result := make([]model.FileWithURL, 0, len(files))
	for _, f := range files {
		url, err := s.storage.PresignDownload(f.BlobKey)
		if err != nil {
			slog.Warn("failed to presign download URL", "file_id", f.ID, "error", err)
		}
		result = append(result, model.FileWithURL{File: *f, URL: url})
	}

	return result, nil
}

// MarkForDeletion flags a file for removal after the retention window.
// Requires the admin role in the file's organization, or personal-scope
// ownership.
func (s *FileService) MarkForDeletion(ctx context.Context, fileID string) error {
	file, err := s.moderatedFile(ctx, fileID)
	if err != nil {
		return err
	}

	err = s.fileRepo.SetShouldDelete(file.ID, true, s.now())
	if err != nil {
		return fmt.Errorf("failed to mark file for deletion: %w", err)
	}

	slog.Info("file marked for deletion", "file_id", file.ID, "org_id", file.OrgID)
	return nil
}

// Restore clears the deletion flag, making the file visible again.
func (s *FileService) Restore(ctx context.Context, fileID string) error {
	file, err := s.moderatedFile(ctx, fileID)
	if err != nil {
		return err
	}

	err = s.fileRepo.SetShouldDelete(file.ID, false, s.now())
	if err != nil {
		return fmt.Errorf("failed to restore file: %w", err)
	}

	slog.Info("file restored", "file_id", file.ID, "org_id", file.OrgID)
	return nil
}

// moderatedFile runs the shared authorization chain for delete/restore.
func (s *FileService) moderatedFile(ctx context.Context, fileID string) (*model.File, error) {
	identity, user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	file, err := s.fileRepo.ByID(fileID)
	if err == repository.ErrFileNotFound {
		return nil, apperr.NotFound("file not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}

	if !HasOrgAccess(user, file.OrgID) {
		return nil, apperr.Forbidden("you must be a member of the organization")
	}
	if !CanModerate(user, identity, file) {
		return nil, apperr.Forbidden("you must be an admin to delete a file")
	}

	return file, nil
}

func keep(files []*model.File, pred func(*model.File) bool) []*model.File {
	kept := files[:0]
	for _, f := range files {
		if pred(f) {
			kept = append(kept, f)
		}
	}
	return kept
}
