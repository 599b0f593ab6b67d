package handlers

import (
	"net/http"

	"inkbook/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusForError maps booking service error codes to HTTP statuses.
func statusForError(err error) int {
	switch booking.ErrorCode(err) {
	case booking.CodeValidation:
		return http.StatusBadRequest
	case booking.CodeSlotConflict, booking.CodeInvalidTransition:
		return http.StatusConflict
	case booking.CodeNotFound:
		return http.StatusNotFound
	case booking.CodeStoreUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondServiceError writes a booking service error as a JSON response.
func respondServiceError(c *gin.Context, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		getLogger(c).Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	body := gin.H{"error": err.Error()}
	if code := booking.ErrorCode(err); code != "" {
		body["code"] = code
	}
	c.JSON(status, body)
}
