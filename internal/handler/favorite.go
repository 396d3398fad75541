package handler

import (
	"net/http"

	"github.com/filedrive/filedrive/internal/service"
)

type FavoriteHandler struct {
	favoriteService *service.FavoriteService
}

func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	added, err := h.favoriteService.Toggle(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	message := "File removed from favorites"
	if added {
		message = "File added to favorites"
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": message, "favorited": added})
}

func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.favoriteService.List(r.Context(), r.URL.Query().Get("orgId"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, favorites)
}
