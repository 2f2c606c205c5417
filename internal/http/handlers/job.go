package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Ngapa/banyu-job-vacation/internal/app"
	"github.com/Ngapa/banyu-job-vacation/internal/common"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/job"
	"github.com/Ngapa/banyu-job-vacation/internal/http/middleware"
	"github.com/Ngapa/banyu-job-vacation/internal/http/response"
)

const dateLayout = "2006-01-02"

type JobHandler struct {
	jobs *app.JobService
}

func NewJobHandler(jobs *app.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

type jobRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	LastDate    string   `json:"last_date"`
	CompanyName string   `json:"company_name"`
	Salary      *int64   `json:"salary,omitempty"`
	Tags        []string `json:"tags"`
}

func (req jobRequest) toJob() (job.Job, error) {
	lastDate, err := time.ParseInLocation(dateLayout, req.LastDate, time.UTC)
	if err != nil {
		return job.Job{}, common.NewValidationError("invalid job", map[string]string{"last_date": "last_date must be formatted as YYYY-MM-DD"})
	}
	return job.Job{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Type:        job.Type(req.Type),
		Category:    req.Category,
		LastDate:    lastDate,
		CompanyName: req.CompanyName,
		Salary:      req.Salary,
		Tags:        req.Tags,
	}, nil
}

func (h *JobHandler) Home(w http.ResponseWriter, r *http.Request) {
	page, err := h.jobs.Home(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, page)
}

func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	offset := 0
	if value := r.URL.Query().Get("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			limit = parsed
		}
	}
	if value := r.URL.Query().Get("offset"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			offset = parsed
		}
	}
	items, err := h.jobs.List(r.Context(), limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *JobHandler) Search(w http.ResponseWriter, r *http.Request) {
	items, err := h.jobs.Search(r.Context(), r.URL.Query().Get("location"), r.URL.Query().Get("title"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	jobID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.jobs.Get(r.Context(), jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *JobHandler) Tags(w http.ResponseWriter, r *http.Request) {
	items, err := h.jobs.Tags(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	posting, err := req.toJob()
	if err != nil {
		response.Error(w, err)
		return
	}
	posting.OwnerID = ownerID
	created, err := h.jobs.Create(r.Context(), posting)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	posting, err := req.toJob()
	if err != nil {
		response.Error(w, err)
		return
	}
	posting.ID = jobID
	posting.OwnerID = ownerID
	updated, err := h.jobs.Update(r.Context(), posting)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *JobHandler) MarkFilled(w http.ResponseWriter, r *http.Request) {
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
	if err := h.jobs.MarkFilled(r.Context(), jobID, ownerID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, messageResponse{Message: "job has been marked as filled"})
}

func (h *JobHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.jobs.ListByOwner(r.Context(), ownerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}
