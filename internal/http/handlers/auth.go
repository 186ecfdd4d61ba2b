package handlers

import (
	"net/http"
	"time"

	"veridia/internal/app"
	"veridia/internal/common"
	"veridia/internal/http/middleware"
	"veridia/internal/http/response"
)

type AuthHandler struct {
	auth        *app.AuthService
	limiter     middleware.Limiter
	loginLimit  int
	loginWindow time.Duration
}

func NewAuthHandler(auth *app.AuthService, limiter middleware.Limiter, loginLimit int, loginWindow time.Duration) *AuthHandler {
	return &AuthHandler{auth: auth, limiter: limiter, loginLimit: loginLimit, loginWindow: loginWindow}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.auth.Register(r.Context(), app.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSONWithMessage(w, http.StatusCreated, "Registration successful", created)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil {
		key := "login:" + middleware.ClientIP(r)
		if !h.limiter.Allow(key, h.loginLimit, h.loginWindow) {
			response.Error(w, common.NewError(common.CodeRateLimited, "too many login attempts", nil))
			return
		}
	}
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	pair, account, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"tokens": pair,
		"user":   account,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	pair, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, pair)
}

// Logout is stateless: tokens are short-lived and the client discards them.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	response.JSONWithMessage(w, http.StatusOK, "Logged out", nil)
}
