package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/ledgerbook/internal/application/service"
	"github.com/sangkips/ledgerbook/internal/presentation/http/dto/request"
	"github.com/sangkips/ledgerbook/internal/presentation/http/dto/response"
	"github.com/sangkips/ledgerbook/internal/presentation/http/middleware"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	sessionService *service.SessionService
	ledgerService  *service.LedgerService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessionService *service.SessionService, ledgerService *service.LedgerService) *AuthHandler {
	return &AuthHandler{sessionService: sessionService, ledgerService: ledgerService}
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.sessionService.Login(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", output)
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.sessionService.Register(c.Request.Context(), &service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Registration successful, check your email for a verification code", gin.H{
		"email":                 req.Email,
		"verification_required": true,
	})
}

// VerifyEmail handles email verification and logs the user in
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req request.VerifyEmailRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.sessionService.VerifyEmail(c.Request.Context(), &service.VerifyEmailInput{
		Email: req.Email,
		Code:  req.Code,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Email verified successfully", output)
}

// ResendVerification handles a request for a new verification code
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req request.ResendVerificationRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.sessionService.ResendVerification(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Verification code sent", nil)
}

// Session returns the cached session
func (h *AuthHandler) Session(c *gin.Context) {
	response.OK(c, "Session retrieved successfully", middleware.GetSession(c))
}

// Logout forgets the session and discards the pending transaction
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessionService.Logout(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	h.ledgerService.Discard()

	response.OK(c, "Logged out successfully", nil)
}
