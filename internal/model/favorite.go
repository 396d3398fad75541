package model

import (
	"time"
)

// Favorite marks a file as favorited by a user within an organization scope.
// Existence implies favorited; rows are never updated in place.
type Favorite struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	OrgID     string    `db:"org_id" json:"orgId"`
	FileID    string    `db:"file_id" json:"fileId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
