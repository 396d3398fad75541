package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filedrive/filedrive/internal/apperr"
	"github.com/filedrive/filedrive/internal/model"
)

func TestUserService_Provisioning(t *testing.T) {
	t.Parallel()

	t.Run("create then resolve by token identifier", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(&fakeUserRepo{})

		created, err := svc.Create("https://issuer.test|user_1", "Ada", "https://img.test/ada.png")
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		user, err := svc.ByTokenIdentifier("https://issuer.test|user_1")
		require.NoError(t, err)
		assert.Equal(t, created.ID, user.ID)
		assert.Equal(t, "Ada", user.Name)
	})

	t.Run("unknown token identifier is NotFound", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(&fakeUserRepo{})

		_, err := svc.ByTokenIdentifier("https://issuer.test|nobody")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("update rewrites profile fields", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(&fakeUserRepo{})

		_, err := svc.Create("https://issuer.test|user_1", "Ada", "")
		require.NoError(t, err)

		err = svc.Update("https://issuer.test|user_1", "Ada L.", "https://img.test/new.png")
		require.NoError(t, err)

		user, err := svc.ByTokenIdentifier("https://issuer.test|user_1")
		require.NoError(t, err)
		assert.Equal(t, "Ada L.", user.Name)
		assert.Equal(t, "https://img.test/new.png", user.ImageURL)
	})

	t.Run("membership add and role update", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(&fakeUserRepo{})

		_, err := svc.Create("https://issuer.test|user_1", "Ada", "")
		require.NoError(t, err)

		err = svc.AddOrgMembership("https://issuer.test|user_1", "org_a", model.RoleMember)
		require.NoError(t, err)

		user, err := svc.ByTokenIdentifier("https://issuer.test|user_1")
		require.NoError(t, err)
		assert.False(t, user.IsAdmin("org_a"))

		err = svc.UpdateOrgRole("https://issuer.test|user_1", "org_a", model.RoleAdmin)
		require.NoError(t, err)

		user, err = svc.ByTokenIdentifier("https://issuer.test|user_1")
		require.NoError(t, err)
		assert.True(t, user.IsAdmin("org_a"))
	})

	t.Run("role update without membership is NotFound", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(&fakeUserRepo{})

		_, err := svc.Create("https://issuer.test|user_1", "Ada", "")
		require.NoError(t, err)

		err = svc.UpdateOrgRole("https://issuer.test|user_1", "org_a", model.RoleAdmin)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(&fakeUserRepo{})

		err := svc.AddOrgMembership("https://issuer.test|user_1", "org_a", "owner")
		assert.ErrorIs(t, err, apperr.ErrInvalid)
	})
}
