package repository_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filedrive/filedrive/internal/db"
	"github.com/filedrive/filedrive/internal/model"
	"github.com/filedrive/filedrive/internal/repository"
)

// newTestDB opens an in-memory sqlite database and runs the real migrations.
// A single connection keeps the in-memory database alive for the test.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)

	return database
}

func newUser(token string) *model.User {
	now := time.Now().UTC().Truncate(time.Second)
	return &model.User{
		ID:              uuid.New().String(),
		TokenIdentifier: token,
		Name:            "Test User",
		ImageURL:        "https://img.test/u.png",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func newFile(orgID string) *model.File {
	now := time.Now().UTC().Truncate(time.Second)
	return &model.File{
		ID:        uuid.New().String(),
		Name:      "report.csv",
		Type:      model.FileTypeCSV,
		BlobKey:   uuid.New().String(),
		OrgID:     orgID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestUserRepository(t *testing.T) {
	database := newTestDB(t)
	users := repository.NewUserRepository(database)

	t.Run("create and resolve with memberships", func(t *testing.T) {
		u := newUser("https://issuer.test|user_1")
		require.NoError(t, users.Create(u))

		require.NoError(t, users.AddMembership(&model.OrgMembership{
			UserID: u.ID, OrgID: "org_a", Role: model.RoleMember, CreatedAt: time.Now().UTC(),
		}))

		got, err := users.ByTokenIdentifier("https://issuer.test|user_1")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		require.Len(t, got.Memberships, 1)
		assert.Equal(t, "org_a", got.Memberships[0].OrgID)
		assert.Equal(t, model.RoleMember, got.Memberships[0].Role)
	})

	t.Run("duplicate token identifier is rejected", func(t *testing.T) {
		err := users.Create(newUser("https://issuer.test|user_1"))
		assert.ErrorIs(t, err, repository.ErrDuplicateUser)
	})

	t.Run("role update", func(t *testing.T) {
		got, err := users.ByTokenIdentifier("https://issuer.test|user_1")
		require.NoError(t, err)

		require.NoError(t, users.UpdateMembershipRole(got.ID, "org_a", model.RoleAdmin))

		got, err = users.ByTokenIdentifier("https://issuer.test|user_1")
		require.NoError(t, err)
		assert.True(t, got.IsAdmin("org_a"))
	})

	t.Run("role update without membership", func(t *testing.T) {
		got, err := users.ByTokenIdentifier("https://issuer.test|user_1")
		require.NoError(t, err)

		err = users.UpdateMembershipRole(got.ID, "org_missing", model.RoleAdmin)
		assert.ErrorIs(t, err, repository.ErrMembershipNotFound)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := users.ByTokenIdentifier("https://issuer.test|nobody")
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}

func TestFileRepository(t *testing.T) {
	database := newTestDB(t)
	files := repository.NewFileRepository(database)

	t.Run("create and list by org", func(t *testing.T) {
		f1 := newFile("org_a")
		f2 := newFile("org_a")
		other := newFile("org_b")
		require.NoError(t, files.Create(f1))
		require.NoError(t, files.Create(f2))
		require.NoError(t, files.Create(other))

		got, err := files.ByOrg("org_a")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("soft-delete flag and updated_at round-trip", func(t *testing.T) {
		f := newFile("org_c")
		require.NoError(t, files.Create(f))

		markedAt := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, files.SetShouldDelete(f.ID, true, markedAt))

		got, err := files.ByID(f.ID)
		require.NoError(t, err)
		assert.True(t, got.ShouldDelete)
		assert.True(t, got.UpdatedAt.Equal(markedAt))

		require.NoError(t, files.SetShouldDelete(f.ID, false, markedAt.Add(time.Hour)))
		got, err = files.ByID(f.ID)
		require.NoError(t, err)
		assert.False(t, got.ShouldDelete)
	})

	t.Run("expired selects only old marked files", func(t *testing.T) {
		now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
		cutoff := now.Add(-720 * time.Hour)

		old := newFile("org_d")
		fresh := newFile("org_d")
		active := newFile("org_d")
		require.NoError(t, files.Create(old))
		require.NoError(t, files.Create(fresh))
		require.NoError(t, files.Create(active))

		require.NoError(t, files.SetShouldDelete(old.ID, true, now.Add(-31*24*time.Hour)))
		require.NoError(t, files.SetShouldDelete(fresh.ID, true, now.Add(-29*24*time.Hour)))

		got, err := files.Expired(cutoff)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, old.ID, got[0].ID)
	})

	t.Run("blob deleted marker", func(t *testing.T) {
		f := newFile("org_e")
		require.NoError(t, files.Create(f))

		require.NoError(t, files.SetBlobDeleted(f.ID))

		got, err := files.ByID(f.ID)
		require.NoError(t, err)
		assert.True(t, got.BlobDeleted)
	})

	t.Run("delete and missing file", func(t *testing.T) {
		f := newFile("org_f")
		require.NoError(t, files.Create(f))
		require.NoError(t, files.Delete(f.ID))

		_, err := files.ByID(f.ID)
		assert.ErrorIs(t, err, repository.ErrFileNotFound)

		err = files.SetShouldDelete(f.ID, true, time.Now())
		assert.ErrorIs(t, err, repository.ErrFileNotFound)
	})
}

func TestFavoriteRepository(t *testing.T) {
	database := newTestDB(t)
	users := repository.NewUserRepository(database)
	files := repository.NewFileRepository(database)
	favorites := repository.NewFavoriteRepository(database)

	u := newUser("https://issuer.test|user_1")
	require.NoError(t, users.Create(u))
	f := newFile("org_a")
	require.NoError(t, files.Create(f))

	t.Run("create, find, list, delete", func(t *testing.T) {
		fav := &model.Favorite{
			ID:        uuid.New().String(),
			UserID:    u.ID,
			OrgID:     "org_a",
			FileID:    f.ID,
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, favorites.Create(fav))

		got, err := favorites.Find(u.ID, "org_a", f.ID)
		require.NoError(t, err)
		assert.Equal(t, fav.ID, got.ID)

		list, err := favorites.ByUserAndOrg(u.ID, "org_a")
		require.NoError(t, err)
		assert.Len(t, list, 1)

		require.NoError(t, favorites.Delete(fav.ID))

		_, err = favorites.Find(u.ID, "org_a", f.ID)
		assert.ErrorIs(t, err, repository.ErrFavoriteNotFound)
	})

	t.Run("duplicate triple violates the unique index", func(t *testing.T) {
		first := &model.Favorite{
			ID: uuid.New().String(), UserID: u.ID, OrgID: "org_a", FileID: f.ID, CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, favorites.Create(first))

		dup := &model.Favorite{
			ID: uuid.New().String(), UserID: u.ID, OrgID: "org_a", FileID: f.ID, CreatedAt: time.Now().UTC(),
		}
		assert.Error(t, favorites.Create(dup))
	})
}
