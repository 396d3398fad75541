package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/filedrive/filedrive/internal/apperr"
	"github.com/filedrive/filedrive/internal/model"
	"github.com/filedrive/filedrive/internal/repository"
)

// UserService resolves caller identities to user records and applies
// provisioning events from the external identity provider.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ByTokenIdentifier resolves an identity token to the matching user record.
func (s *UserService) ByTokenIdentifier(tokenIdentifier string) (*model.User, error) {
	user, err := s.userRepo.ByTokenIdentifier(tokenIdentifier)
	if err == repository.ErrUserNotFound {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// Create provisions a user from an identity-provider sign-up event.
func (s *UserService) Create(tokenIdentifier, name, imageURL string) (*model.User, error) {
	now := time.Now()
	user := &model.User{
		ID:              uuid.New().String(),
		TokenIdentifier: tokenIdentifier,
		Name:            name,
		ImageURL:        imageURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err := s.userRepo.Create(user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Update applies profile changes from an identity-provider update event.
func (s *UserService) Update(tokenIdentifier, name, imageURL string) error {
	user, err := s.ByTokenIdentifier(tokenIdentifier)
	if err != nil {
		return err
	}

	user.Name = name
	user.ImageURL = imageURL
	user.UpdatedAt = time.Now()

	err = s.userRepo.Update(user)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// AddOrgMembership records that the user joined an organization.
func (s *UserService) AddOrgMembership(tokenIdentifier, orgID, role string) error {
	if role != model.RoleAdmin && role != model.RoleMember {
		return apperr.Invalid("unknown role %q", role)
	}

	user, err := s.ByTokenIdentifier(tokenIdentifier)
	if err != nil {
		return err
	}

	err = s.userRepo.AddMembership(&model.OrgMembership{
		UserID:    user.ID,
		OrgID:     orgID,
		Role:      role,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to add membership: %w", err)
	}
	return nil
}

// UpdateOrgRole changes the user's role within an organization.
func (s *UserService) UpdateOrgRole(tokenIdentifier, orgID, role string) error {
	if role != model.RoleAdmin && role != model.RoleMember {
		return apperr.Invalid("unknown role %q", role)
	}

	user, err := s.ByTokenIdentifier(tokenIdentifier)
	if err != nil {
		return err
	}

	err = s.userRepo.UpdateMembershipRole(user.ID, orgID, role)
	if err == repository.ErrMembershipNotFound {
		return apperr.NotFound("user is not a member of the organization")
	}
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return nil
}
