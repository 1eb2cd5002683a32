// Package handler exposes the department registry endpoints
package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jansunwai/jansunwai-backend/internal/department/repository"
	"github.com/jansunwai/jansunwai-backend/pkg/httputil"
	"github.com/jansunwai/jansunwai-backend/pkg/logger"
)

// DepartmentHandler handles department endpoints
type DepartmentHandler struct {
	repo   *repository.DepartmentRepository
	logger *logger.Logger
}

// NewDepartmentHandler creates a new department handler
func NewDepartmentHandler(repo *repository.DepartmentRepository, log *logger.Logger) *DepartmentHandler {
	return &DepartmentHandler{repo: repo, logger: log}
}

// List handles GET /departments
func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	departments, err := h.repo.List(r.Context())
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, departments)
}

// GetByCode handles GET /departments/{code}
func (h *DepartmentHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(chi.URLParam(r, "code"))
	dept, err := h.repo.GetByCode(r.Context(), code)
	if err != nil {
		httputil.ErrorLocalized(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, dept)
}
