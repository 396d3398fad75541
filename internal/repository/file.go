package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/filedrive/filedrive/internal/model"
)

var (
	ErrFileNotFound = errors.New("file not found")
)

type FileRepository interface {
	Create(file *model.File) error
	ByID(id string) (*model.File, error)
	ByOrg(orgID string) ([]*model.File, error)
	SetShouldDelete(id string, shouldDelete bool, updatedAt time.Time) error
	SetBlobDeleted(id string) error
	Expired(cutoff time.Time) ([]*model.File, error)
	Delete(id string) error
}

type fileRepository struct {
	db *sqlx.DB
}

func NewFileRepository(db *sqlx.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(file *model.File) error {
	query := `INSERT INTO files (id, name, type, blob_key, org_id, should_delete, blob_deleted, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		file.ID,
		file.Name,
		file.Type,
		file.BlobKey,
		file.OrgID,
		file.ShouldDelete,
		file.BlobDeleted,
		file.CreatedAt,
		file.UpdatedAt,
	)

	return err
}

func (r *fileRepository) ByID(id string) (*model.File, error) {
	file := &model.File{}
	query := `SELECT * FROM files WHERE id = $1`

	err := r.db.Get(file, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrFileNotFound
	}

	return file, err
}

// ByOrg returns all files in an organization scope, soft-deleted included,
// in insertion order. Filtering is applied by the service layer.
func (r *fileRepository) ByOrg(orgID string) ([]*model.File, error) {
	var files []*model.File
	query := `SELECT * FROM files WHERE org_id = $1`

	err := r.db.Select(&files, query, orgID)
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (r *fileRepository) SetShouldDelete(id string, shouldDelete bool, updatedAt time.Time) error {
	query := `UPDATE files SET should_delete = $1, updated_at = $2 WHERE id = $3`

	res, err := r.db.Exec(query, shouldDelete, updatedAt, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFileNotFound
	}
	return nil
}

// SetBlobDeleted records that the underlying blob is already gone, so an
// interrupted purge can be retried without a second storage delete.
func (r *fileRepository) SetBlobDeleted(id string) error {
	query := `UPDATE files SET blob_deleted = TRUE WHERE id = $1`
	_, err := r.db.Exec(query, id)
	return err
}

// Expired returns files marked for deletion whose mark is older than cutoff.
func (r *fileRepository) Expired(cutoff time.Time) ([]*model.File, error) {
	var files []*model.File
	query := `SELECT * FROM files WHERE should_delete = TRUE AND updated_at <= $1`

	err := r.db.Select(&files, query, cutoff)
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (r *fileRepository) Delete(id string) error {
	query := `DELETE FROM files WHERE id = $1`
	_, err := r.db.Exec(query, id)
	return err
}
