package handlers

import (
	"net/http"

	"veridia/internal/app"
	"veridia/internal/common"
	"veridia/internal/domain/position"
	"veridia/internal/http/middleware"
	"veridia/internal/http/response"
)

type PositionHandler struct {
	positions *app.PositionService
}

func NewPositionHandler(positions *app.PositionService) *PositionHandler {
	return &PositionHandler{positions: positions}
}

func (h *PositionHandler) List(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("department"); raw != "" {
		departmentID, err := common.ParseUUID(raw)
		if err != nil {
			response.Error(w, common.NewValidationError("invalid department filter", map[string]string{"department": "invalid uuid"}))
			return
		}
		items, err := h.positions.ListByDepartment(r.Context(), departmentID)
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, items)
		return
	}
	items, err := h.positions.ListOpen(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

type createPositionRequest struct {
	Title        string   `json:"title"`
	DepartmentID string   `json:"department_id"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	IsActive     *bool    `json:"is_active"`
}

func (h *PositionHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req createPositionRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	created, err := h.positions.Create(r.Context(), actorID, position.Position{
		Title:        req.Title,
		DepartmentID: common.UUID(req.DepartmentID),
		Description:  req.Description,
		Requirements: req.Requirements,
		IsActive:     active,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

// Omitted fields keep their stored values.
type updatePositionRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Requirements []string `json:"requirements"`
	IsActive     *bool    `json:"is_active"`
}

func (h *PositionHandler) Update(w http.ResponseWriter, r *http.Request) {
	positionID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req updatePositionRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.positions.Update(r.Context(), positionID, position.Update{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		IsActive:     req.IsActive,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *PositionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	positionID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.positions.Delete(r.Context(), positionID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSONWithMessage(w, http.StatusOK, "Position deleted", nil)
}
