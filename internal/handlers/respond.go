package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MrTochi/focus-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// fail writes the error envelope.
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message, "success": false})
}

// serverError hides internals behind a generic message.
func serverError(c *gin.Context) {
	fail(c, http.StatusInternalServerError, "Server error")
}

// failFromService maps service sentinel errors onto statuses; anything
// unrecognized (persistence, mail delivery) becomes a 500.
func failFromService(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrInvalidPriority),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrNotVerified),
		errors.Is(err, service.ErrInvalidOrExpired):
		fail(c, http.StatusBadRequest, errMessage(err))
	case errors.Is(err, service.ErrNotFound):
		fail(c, http.StatusNotFound, errMessage(err))
	case errors.Is(err, service.ErrForbidden):
		fail(c, http.StatusForbidden, errMessage(err))
	default:
		serverError(c)
	}
}

func errMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		return "All fields are required."
	case errors.Is(err, service.ErrPasswordTooShort):
		return "Password must be at least 6 characters"
	case errors.Is(err, service.ErrInvalidPriority):
		return "Priority must be low, medium or high"
	case errors.Is(err, service.ErrEmailTaken):
		return "User already exists"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, service.ErrNotVerified):
		return "User is not verified"
	case errors.Is(err, service.ErrInvalidOrExpired):
		return "Invalid or expired token"
	case errors.Is(err, service.ErrNotFound):
		return "Not found"
	case errors.Is(err, service.ErrForbidden):
		return "You are not authorized to perform this action"
	}
	return "Server error"
}

// parseID reads a positive int64 path param or writes a 400.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
