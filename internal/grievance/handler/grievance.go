// Package handler exposes the grievance endpoints
package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jansunwai/jansunwai-backend/internal/grievance/service"
	"github.com/jansunwai/jansunwai-backend/pkg/httputil"
	"github.com/jansunwai/jansunwai-backend/pkg/logger"
)

// GrievanceHandler handles grievance endpoints
type GrievanceHandler struct {
	service *service.GrievanceService
	logger  *logger.Logger
}

// NewGrievanceHandler creates a new grievance handler
func NewGrievanceHandler(svc *service.GrievanceService, log *logger.Logger) *GrievanceHandler {
	return &GrievanceHandler{
		service: svc,
		logger:  log,
	}
}

// Submit handles POST /grievances
func (h *GrievanceHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req service.SubmitRequest
	if err := httputil.DecodeJSONLocalized(r, &req); err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}
	if err := httputil.Validate(&req); err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	resp, err := h.service.Submit(r.Context(), httputil.GetUserID(r.Context()), &req)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	httputil.Created(w, resp)
}

// Track handles GET /grievances/track/{trackingId}
func (h *GrievanceHandler) Track(w http.ResponseWriter, r *http.Request) {
	trackingID := chi.URLParam(r, "trackingId")

	view, err := h.service.Track(r.Context(), trackingID,
		httputil.GetUserID(r.Context()), httputil.GetUserRole(r.Context()))
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, view)
}

// ListMine handles GET /grievances/mine
func (h *GrievanceHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	grievances, total, err := h.service.ListMine(r.Context(), httputil.GetUserID(r.Context()), page, perPage)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}

	httputil.JSONWithMeta(w, http.StatusOK, grievances, &httputil.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	})
}

// UpdateStatus handles PUT /grievances/{id}/status
func (h *GrievanceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req service.UpdateStatusRequest
	if err := httputil.DecodeJSONLocalized(r, &req); err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}
	if err := httputil.Validate(&req); err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	g, err := h.service.UpdateStatus(r.Context(), id, &req,
		httputil.GetUserID(r.Context()), httputil.GetUserRole(r.Context()))
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, g)
}

// Assign handles PUT /grievances/{id}/assign
func (h *GrievanceHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req service.AssignRequest
	if err := httputil.DecodeJSONLocalized(r, &req); err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}
	if err := httputil.Validate(&req); err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	g, err := h.service.Assign(r.Context(), id, &req,
		httputil.GetUserID(r.Context()), httputil.GetUserRole(r.Context()))
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, g)
}

// AddComment handles POST /grievances/{id}/comments
func (h *GrievanceHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req service.AddCommentRequest
	if err := httputil.DecodeJSONLocalized(r, &req); err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}
	if err := httputil.Validate(&req); err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	comment, err := h.service.AddComment(r.Context(), id, &req,
		httputil.GetUserID(r.Context()), httputil.GetUserRole(r.Context()))
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}

	httputil.Created(w, comment)
}
