package model

import (
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type User struct {
	ID              string    `db:"id"`
	TokenIdentifier string    `db:"token_identifier"` // Issuer-qualified identity token, unique
	Name            string    `db:"name"`
	ImageURL        string    `db:"image_url"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`

	// Loaded separately (not a column)
	Memberships []OrgMembership `db:"-"`
}

type OrgMembership struct {
	UserID    string    `db:"user_id"`
	OrgID     string    `db:"org_id"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
}

// Membership returns the user's membership in the given organization, or nil.
func (u *User) Membership(orgID string) *OrgMembership {
	for i := range u.Memberships {
		if u.Memberships[i].OrgID == orgID {
			return &u.Memberships[i]
		}
	}
	return nil
}

func (u *User) IsAdmin(orgID string) bool {
	m := u.Membership(orgID)
	return m != nil && m.Role == RoleAdmin
}
