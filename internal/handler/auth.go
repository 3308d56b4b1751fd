package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/booknest/backend/internal/model"
	"github.com/booknest/backend/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Registration payload"
// @Success 201 {object} model.Envelope
// @Failure 400 {object} model.Envelope
// @Failure 409 {object} model.Envelope
// @Router /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.svc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	respond(c, http.StatusCreated, "User registered successfully", profile)
}

// Login godoc
// @Summary Login with email and password, triggering an OTP email
// @Tags users
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login payload"
// @Success 200 {object} model.Envelope
// @Failure 401 {object} model.Envelope
// @Failure 502 {object} model.Envelope
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	respond(c, http.StatusOK, "OTP sent to your email", result)
}

// VerifyOTP godoc
// @Summary Verify the emailed OTP and receive tokens
// @Tags users
// @Accept json
// @Produce json
// @Param request body model.VerifyOTPRequest true "OTP payload"
// @Success 200 {object} model.Envelope
// @Failure 400 {object} model.Envelope
// @Failure 404 {object} model.Envelope
// @Router /users/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req model.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	result, err := h.svc.VerifyOTP(c.Request.Context(), userID, req.OTP)
	if err != nil {
		writeError(c, err)
		return
	}

	respond(c, http.StatusOK, "OTP verified successfully", result)
}

// ResendOTP godoc
// @Summary Resend the OTP for a login in progress
// @Tags users
// @Accept json
// @Produce json
// @Param request body model.ResendOTPRequest true "Resend payload"
// @Success 200 {object} model.Envelope
// @Failure 400 {object} model.Envelope
// @Failure 404 {object} model.Envelope
// @Router /users/resend-otp [post]
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req model.ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	result, err := h.svc.ResendOTP(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	respond(c, http.StatusOK, "OTP sent to your email", result)
}

// Refresh godoc
// @Summary Exchange a refresh token for a new access token
// @Tags users
// @Accept json
// @Produce json
// @Param request body model.RefreshRequest true "Refresh payload"
// @Success 200 {object} model.Envelope
// @Failure 401 {object} model.Envelope
// @Router /users/refresh-token [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Refresh token is required")
		return
	}

	result, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeError(c, err)
		return
	}

	respond(c, http.StatusOK, "", result)
}
