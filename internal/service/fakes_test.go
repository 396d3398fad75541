package service

import (
	"errors"
	"sync"
	"time"

	"github.com/filedrive/filedrive/internal/model"
	"github.com/filedrive/filedrive/internal/repository"
)

type fakeUserRepo struct {
	users []*model.User
}

func (r *fakeUserRepo) Create(user *model.User) error {
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) ByID(id string) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) ByTokenIdentifier(tokenIdentifier string) (*model.User, error) {
	for _, u := range r.users {
		if u.TokenIdentifier == tokenIdentifier {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Update(user *model.User) error {
	for i, u := range r.users {
		if u.ID == user.ID {
			r.users[i] = user
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (r *fakeUserRepo) AddMembership(m *model.OrgMembership) error {
	u, err := r.ByID(m.UserID)
	if err != nil {
		return err
	}
	u.Memberships = append(u.Memberships, *m)
	return nil
}

func (r *fakeUserRepo) UpdateMembershipRole(userID, orgID, role string) error {
	u, err := r.ByID(userID)
	if err != nil {
		return err
	}
	for i := range u.Memberships {
		if u.Memberships[i].OrgID == orgID {
			u.Memberships[i].Role = role
			return nil
		}
	}
	return repository.ErrMembershipNotFound
}

// fakeFileRepo is safe for concurrent use; purge processes files in parallel.
type fakeFileRepo struct {
	mu    sync.Mutex
	files []*model.File
}

func (r *fakeFileRepo) Create(file *model.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *file
	r.files = append(r.files, &copied)
	return nil
}

func (r *fakeFileRepo) ByID(id string) (*model.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.files {
		if f.ID == id {
			copied := *f
			return &copied, nil
		}
	}
	return nil, repository.ErrFileNotFound
}

func (r *fakeFileRepo) ByOrg(orgID string) ([]*model.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var files []*model.File
	for _, f := range r.files {
		if f.OrgID == orgID {
			copied := *f
			files = append(files, &copied)
		}
	}
	return files, nil
}

func (r *fakeFileRepo) SetShouldDelete(id string, shouldDelete bool, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.files {
		if f.ID == id {
			f.ShouldDelete = shouldDelete
			f.UpdatedAt = updatedAt
			return nil
		}
	}
	return repository.ErrFileNotFound
}

func (r *fakeFileRepo) SetBlobDeleted(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.files {
		if f.ID == id {
			f.BlobDeleted = true
			return nil
		}
	}
	return repository.ErrFileNotFound
}

func (r *fakeFileRepo) Expired(cutoff time.Time) ([]*model.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var files []*model.File
	for _, f := range r.files {
		if f.ShouldDelete && !f.UpdatedAt.After(cutoff) {
			copied := *f
			files = append(files, &copied)
		}
	}
	return files, nil
}

func (r *fakeFileRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, f := range r.files {
		if f.ID == id {
			r.files = append(r.files[:i], r.files[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeFavoriteRepo struct {
	favorites []*model.Favorite
}

func (r *fakeFavoriteRepo) Create(favorite *model.Favorite) error {
	copied := *favorite
	r.favorites = append(r.favorites, &copied)
	return nil
}

func (r *fakeFavoriteRepo) Find(userID, orgID, fileID string) (*model.Favorite, error) {
	for _, fav := range r.favorites {
		if fav.UserID == userID && fav.OrgID == orgID && fav.FileID == fileID {
			copied := *fav
			return &copied, nil
		}
	}
	return nil, repository.ErrFavoriteNotFound
}

func (r *fakeFavoriteRepo) ByUserAndOrg(userID, orgID string) ([]*model.Favorite, error) {
	var favorites []*model.Favorite
	for _, fav := range r.favorites {
		if fav.UserID == userID && fav.OrgID == orgID {
			copied := *fav
			favorites = append(favorites, &copied)
		}
	}
	return favorites, nil
}

func (r *fakeFavoriteRepo) Delete(id string) error {
	for i, fav := range r.favorites {
		if fav.ID == id {
			r.favorites = append(r.favorites[:i], r.favorites[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeStorage records blob operations; keys in failDeletes make Delete fail.
// Safe for concurrent use.
type fakeStorage struct {
	mu          sync.Mutex
	deleted     []string
	failDeletes map[string]bool
}

func (s *fakeStorage) PresignUpload(key string) (string, error) {
	return "https://storage.test/upload/" + key, nil
}

func (s *fakeStorage) PresignDownload(key string) (string, error) {
	return "https://storage.test/download/" + key, nil
}

func (s *fakeStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDeletes[key] {
		return errors.New("storage unavailable")
	}
	s.deleted = append(s.deleted, key)
	return nil
}
