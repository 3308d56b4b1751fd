package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/booknest/backend/internal/model"
	"github.com/booknest/backend/internal/service"
)

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, model.Envelope{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, model.Envelope{Success: false, Message: message})
}

// writeError maps domain errors to HTTP statuses in one place.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrInvalidOtp):
		respondError(c, http.StatusBadRequest, "Invalid or expired OTP")
	case errors.Is(err, service.ErrInvalidToken):
		respondError(c, http.StatusUnauthorized, "Invalid or expired refresh token")
	case errors.Is(err, service.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, service.ErrForbidden):
		respondError(c, http.StatusForbidden, "Access denied")
	case errors.Is(err, service.ErrConflict):
		respondError(c, http.StatusConflict, "User with this email or username already exists")
	case errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, service.ErrDeliveryFailed):
		respondError(c, http.StatusBadGateway, "Failed to send OTP email")
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
