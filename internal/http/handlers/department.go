package handlers

import (
	"net/http"

	"veridia/internal/app"
	"veridia/internal/domain/department"
	"veridia/internal/http/middleware"
	"veridia/internal/http/response"
)

type DepartmentHandler struct {
	departments *app.DepartmentService
}

func NewDepartmentHandler(departments *app.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departments: departments}
}

func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.departments.List(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

type departmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req departmentRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.departments.Create(r.Context(), actorID, department.Department{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

// Omitted fields keep their stored values.
type updateDepartmentRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	departmentID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req updateDepartmentRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.departments.Update(r.Context(), departmentID, department.Update{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *DepartmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	departmentID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.departments.Delete(r.Context(), departmentID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSONWithMessage(w, http.StatusOK, "Department deleted", nil)
}
