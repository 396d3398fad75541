package handler

import (
	"net/http"

	"github.com/filedrive/filedrive/internal/apperr"
	"github.com/filedrive/filedrive/internal/service"
	"github.com/filedrive/filedrive/internal/validation"
)

type FileHandler struct {
	fileService *service.FileService
}

func NewFileHandler(fileService *service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// GenerateUploadURL mints a short-lived presigned PUT URL. The client
// uploads directly to storage, then reports back via Create.
func (h *FileHandler) GenerateUploadURL(w http.ResponseWriter, r *http.Request) {
	slot, err := h.fileService.RequestUploadSlot(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, slot)
}

func (h *FileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		BlobKey  string `json:"blobKey"`
		Type     string `json:"type"`
		MimeType string `json:"mimeType"`
		OrgID    string `json:"orgId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	// The client may send the raw content type instead of a resolved enum value
	fileType := req.Type
	if fileType == "" && req.MimeType != "" {
		mapped, err := validation.FileTypeForMIME(req.MimeType)
		if err != nil {
			respondError(w, r, apperr.Invalid("%s", err.Error()))
			return
		}
		fileType = mapped
	}

	file, err := h.fileService.Create(r.Context(), req.Name, req.BlobKey, fileType, req.OrgID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, file)
}

func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := service.Filter{
		Query:         q.Get("q"),
		FavoritesOnly: q.Get("favorites") == "true",
		DeletedOnly:   q.Get("deleted") == "true",
		Type:          q.Get("type"),
	}

	files, err := h.fileService.List(r.Context(), q.Get("orgId"), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, files)
}

func (h *FileHandler) Trash(w http.ResponseWriter, r *http.Request) {
	err := h.fileService.MarkForDeletion(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "File marked for deletion"})
}

func (h *FileHandler) Restore(w http.ResponseWriter, r *http.Request) {
	err := h.fileService.Restore(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "File restored"})
}
