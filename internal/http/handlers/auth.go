package handlers

import (
	"net/http"
	"time"

	"github.com/Ngapa/banyu-job-vacation/internal/app"
	"github.com/Ngapa/banyu-job-vacation/internal/common"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/user"
	"github.com/Ngapa/banyu-job-vacation/internal/http/middleware"
	"github.com/Ngapa/banyu-job-vacation/internal/http/response"
)

type AuthHandler struct {
	accounts *app.AccountService
	limiter  middleware.Limiter
}

func NewAuthHandler(accounts *app.AccountService, limiter middleware.Limiter) *AuthHandler {
	return &AuthHandler{accounts: accounts, limiter: limiter}
}

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    string `json:"gender,omitempty"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type registerResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
	Role         string `json:"role,omitempty"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) RegisterEmployee(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, true)
}

func (h *AuthHandler) RegisterEmployer(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, false)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request, employee bool) {
	if !h.allow(w, r, "register") {
		return
	}
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	input := app.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    req.Gender,
		Email:     req.Email,
		Password:  req.Password,
	}
	var account *user.User
	var err error
	if employee {
		account, err = h.accounts.RegisterEmployee(r.Context(), input)
	} else {
		account, err = h.accounts.RegisterEmployer(r.Context(), input)
	}
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, registerResponse{UserID: account.ID.String(), Role: string(account.Role)})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, "login") {
		return
	}
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	result, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, tokenResponse{
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
		ExpiresAt:    result.Tokens.ExpiresAt.Format(time.RFC3339),
		Role:         string(result.User.Role),
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.RefreshToken == "" {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"refresh_token": "refresh_token is required"}))
		return
	}
	tokens, err := h.accounts.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, tokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt.Format(time.RFC3339),
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if err := h.accounts.Logout(r.Context(), req.RefreshToken); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, messageResponse{Message: "logged out"})
}

func (h *AuthHandler) allow(w http.ResponseWriter, r *http.Request, action string) bool {
	if h.limiter == nil {
		return true
	}
	key := action + ":ip:" + middleware.ClientIP(r)
	if !h.limiter.Allow(key, 10, time.Minute) {
		response.Error(w, common.NewError(common.CodeRateLimited, action+" rate limit exceeded", nil))
		return false
	}
	return true
}
