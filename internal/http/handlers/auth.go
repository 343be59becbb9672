package handlers

import (
	"net/http"

	"abarto-backend/internal/domain"
	"abarto-backend/internal/http/middleware"
	"abarto-backend/internal/services"
	"abarto-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Auth   services.AuthService
	Admins services.ResourceService
}

func NewAuthHandler(auth services.AuthService, admins services.ResourceService) AuthHandler {
	return AuthHandler{Auth: auth, Admins: admins}
}

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Position  string `json:"position"`
	Password  string `json:"password"`
}

// POST /api/auth/register
func (h AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	rec := domain.Record{
		"first_name": utils.TrimOrEmpty(req.FirstName),
		"last_name":  utils.TrimOrEmpty(req.LastName),
		"email":      utils.NormalizeEmail(req.Email),
		"phone":      utils.TrimOrEmpty(req.Phone),
		"position":   utils.TrimOrEmpty(req.Position),
		"role":       "admin",
		"password":   req.Password,
	}

	created, err := h.Admins.Create(c.Request.Context(), rec)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "register", "email="+utils.NormalizeEmail(req.Email))
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	principal, err := h.Auth.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	token, err := h.Auth.IssueToken(principal)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "email="+utils.NormalizeEmail(req.Email))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"data":    principal,
	})
}
