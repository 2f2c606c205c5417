package handlers

import (
	"net/http"
	"strings"

	"github.com/Ngapa/banyu-job-vacation/internal/app"
	"github.com/Ngapa/banyu-job-vacation/internal/common"
	"github.com/Ngapa/banyu-job-vacation/internal/http/middleware"
	"github.com/Ngapa/banyu-job-vacation/internal/http/response"
)

type FavoriteHandler struct {
	favorites *app.FavoriteService
}

func NewFavoriteHandler(favorites *app.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

type favoriteRequest struct {
	JobID string `json:"job_id"`
}

type favoriteResponse struct {
	Auth    bool   `json:"auth"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Toggle sits behind optional authentication and answers anonymous callers
// with its own {"auth": false} shape instead of the generic error envelope.
func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.JSON(w, http.StatusUnauthorized, favoriteResponse{Auth: false, Status: "error", Message: "you need to login first"})
		return
	}
	var req favoriteRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if strings.TrimSpace(req.JobID) == "" {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"job_id": "job_id is required"}))
		return
	}
	jobID, err := common.ParseUUID(req.JobID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"job_id": "invalid uuid"}))
		return
	}
	result, err := h.favorites.Toggle(r.Context(), userID, jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, favoriteResponse{Auth: true, Status: result.Status, Message: result.Message})
}

func (h *FavoriteHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.favorites.ListByUser(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
