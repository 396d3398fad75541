package model

import (
	"time"
)

const (
	FileTypeImage = "image"
	FileTypePDF   = "pdf"
	FileTypeCSV   = "csv"
)

// ValidFileType reports whether t is one of the supported file types.
func ValidFileType(t string) bool {
	switch t {
	case FileTypeImage, FileTypePDF, FileTypeCSV:
		return true
	}
	return false
}

type File struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Type         string    `db:"type" json:"type"`
	BlobKey      string    `db:"blob_key" json:"blobKey"` // Object storage key
	OrgID        string    `db:"org_id" json:"orgId"`     // Organization or personal-namespace scope
	ShouldDelete bool      `db:"should_delete" json:"shouldDelete"`
	BlobDeleted  bool      `db:"blob_deleted" json:"-"` // Set by purge after the blob is gone, before the record is removed
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// FileWithURL is a file annotated with a resolved download URL for listings.
type FileWithURL struct {
	File
	URL string `json:"url"`
}
