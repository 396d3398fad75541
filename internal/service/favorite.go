package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/filedrive/filedrive/internal/apperr"
	"github.com/filedrive/filedrive/internal/ctxkeys"
	"github.com/filedrive/filedrive/internal/model"
	"github.com/filedrive/filedrive/internal/repository"
)

type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	fileRepo     repository.FileRepository
	userRepo     repository.UserRepository
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, fileRepo repository.FileRepository, userRepo repository.UserRepository) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		fileRepo:     fileRepo,
		userRepo:     userRepo,
	}
}

func (s *FavoriteService) caller(ctx context.Context) (*model.User, error) {
	identity := ctxkeys.GetIdentity(ctx)
	if identity == nil {
		return nil, apperr.ErrUnauthenticated
	}

	user, err := s.userRepo.ByTokenIdentifier(identity.TokenIdentifier)
	if err == repository.ErrUserNotFound {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// Toggle flips the favorite state for (caller, file's org, file). Favorite
// state is pure record existence, so the sole mutation is a toggle: present
// rows are deleted, absent rows inserted. Returns true when the file was
// added to favorites, false when removed.
func (s *FavoriteService) Toggle(ctx context.Context, fileID string) (bool, error) {
	user, err := s.caller(ctx)
	if err != nil {
		return false, err
	}

	file, err := s.fileRepo.ByID(fileID)
	if err == repository.ErrFileNotFound {
		return false, apperr.NotFound("file not found")
	}
	if err != nil {
		return false, fmt.Errorf("failed to get file: %w", err)
	}

	if !HasOrgAccess(user, file.OrgID) {
		return false, apperr.Forbidden("you must be a member of the organization")
	}

	favorite, err := s.favoriteRepo.Find(user.ID, file.OrgID, file.ID)
	if err != nil && err != repository.ErrFavoriteNotFound {
		return false, fmt.Errorf("failed to look up favorite: %w", err)
	}

	if favorite != nil {
		err = s.favoriteRepo.Delete(favorite.ID)
		if err != nil {
			return false, fmt.Errorf("failed to remove favorite: %w", err)
		}
		return false, nil
	}

	err = s.favoriteRepo.Create(&model.Favorite{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		OrgID:     file.OrgID,
		FileID:    file.ID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	return true, nil
}

// List returns all of the caller's favorites within an organization scope.
// Unlike file listings this read path requires authentication.
func (s *FavoriteService) List(ctx context.Context, orgID string) ([]*model.Favorite, error) {
	user, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	favorites, err := s.favoriteRepo.ByUserAndOrg(user.ID, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	return favorites, nil
}
