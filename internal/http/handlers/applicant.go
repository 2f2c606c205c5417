package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Ngapa/banyu-job-vacation/internal/app"
	"github.com/Ngapa/banyu-job-vacation/internal/common"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/applicant"
	"github.com/Ngapa/banyu-job-vacation/internal/http/middleware"
	"github.com/Ngapa/banyu-job-vacation/internal/http/response"
)

type ApplicantHandler struct {
	applicants *app.ApplicantService
	limiter    middleware.Limiter
}

func NewApplicantHandler(applicants *app.ApplicantService, limiter middleware.Limiter) *ApplicantHandler {
	return &ApplicantHandler{applicants: applicants, limiter: limiter}
}

func (h *ApplicantHandler) Apply(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if h.limiter != nil {
		key := "apply:" + employeeID.String()
		if !h.limiter.Allow(key, 10, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "apply rate limit exceeded", nil))
			return
		}
	}
	created, err := h.applicants.Apply(r.Context(), jobID, employeeID)
	if err != nil {
		// Applying twice is not an error from the employee's point of view.
		if common.Is(err, common.CodeConflict) {
			response.JSON(w, http.StatusOK, messageResponse{Message: "you have already applied for this job"})
			return
		}
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ApplicantHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	status, err := statusFilter(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.applicants.ListByEmployee(r.Context(), employeeID, status)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicantHandler) ListForJob(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.applicants.ListForJob(r.Context(), jobID, ownerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicantHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	status, err := statusFilter(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.applicants.ListByOwner(r.Context(), ownerID, status)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *ApplicantHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicantID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.applicants.Get(r.Context(), applicantID, ownerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

type sendResponseRequest struct {
	Status  int    `json:"status"`
	Comment string `json:"comment"`
}

type sendResponseResponse struct {
	Applicant *applicant.Applicant `json:"applicant"`
	Message   string               `json:"message"`
}

func (h *ApplicantHandler) SendResponse(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	applicantID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req sendResponseRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	result, err := h.applicants.SendResponse(r.Context(), applicantID, ownerID, applicant.Status(req.Status), req.Comment)
	if err != nil {
		response.Error(w, err)
		return
	}
	if result.AlreadySent {
		response.JSON(w, http.StatusOK, sendResponseResponse{Applicant: result.Applicant, Message: "response was not sent, maybe already sent"})
		return
	}
	response.JSON(w, http.StatusOK, sendResponseResponse{Applicant: result.Applicant, Message: "response was successfully sent to applicant"})
}

func statusFilter(r *http.Request) (*applicant.Status, error) {
	value := r.URL.Query().Get("status")
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil, common.NewValidationError("invalid status filter", map[string]string{"status": "status must be an integer"})
	}
	status := applicant.Status(parsed)
	if !status.Known() {
		return nil, common.NewValidationError("invalid status filter", map[string]string{"status": "status must be 0 (pending), 1 (accepted), or 2 (rejected)"})
	}
	return &status, nil
}
