package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/filedrive/filedrive/internal/model"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrMembershipNotFound = errors.New("user is not a member of the organization")
)

type UserRepository interface {
	Create(user *model.User) error
	ByID(id string) (*model.User, error)
	ByTokenIdentifier(tokenIdentifier string) (*model.User, error)
	Update(user *model.User) error
	AddMembership(m *model.OrgMembership) error
	UpdateMembershipRole(userID, orgID, role string) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO users (id, token_identifier, name, image_url, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(query, user.ID, user.TokenIdentifier, user.Name, user.ImageURL, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		// Check for unique constraint violation (works for both SQLite and PostgreSQL)
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrDuplicateUser
		}
		return err
	}

	return nil
}

func (r *userRepository) ByID(id string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.Get(user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return r.withMemberships(user)
}

func (r *userRepository) ByTokenIdentifier(tokenIdentifier string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT * FROM users WHERE token_identifier = $1`

	err := r.db.Get(user, query, tokenIdentifier)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return r.withMemberships(user)
}

func (r *userRepository) withMemberships(user *model.User) (*model.User, error) {
	var memberships []model.OrgMembership
	query := `SELECT * FROM org_memberships WHERE user_id = $1 ORDER BY created_at`

	err := r.db.Select(&memberships, query, user.ID)
	if err != nil {
		return nil, err
	}

	user.Memberships = memberships
	return user, nil
}

func (r *userRepository) Update(user *model.User) error {
	query := `UPDATE users SET name = $1, image_url = $2, updated_at = $3 WHERE id = $4`

	_, err := r.db.Exec(query, user.Name, user.ImageURL, user.UpdatedAt, user.ID)
	return err
}

func (r *userRepository) AddMembership(m *model.OrgMembership) error {
	query := `INSERT INTO org_memberships (user_id, org_id, role, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query, m.UserID, m.OrgID, m.Role, m.CreatedAt)
	return err
}

func (r *userRepository) UpdateMembershipRole(userID, orgID, role string) error {
	query := `UPDATE org_memberships SET role = $1 WHERE user_id = $2 AND org_id = $3`

	res, err := r.db.Exec(query, role, userID, orgID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMembershipNotFound
	}
	return nil
}
