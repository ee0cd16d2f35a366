package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/salesai/backend/internal/domain"
)

// errorResponse maps a service error to its status code and JSON body
func errorResponse(err error) (int, gin.H) {
	var invalidJSON *domain.InvalidJSONError
	var missing *domain.MissingCredentialError

	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, gin.H{"error": err.Error()}
	case errors.As(err, &invalidJSON):
		return http.StatusInternalServerError, gin.H{
			"error": domain.ErrInvalidJSON.Error(),
			"raw":   invalidJSON.Raw,
		}
	case errors.As(err, &missing):
		return http.StatusInternalServerError, gin.H{"error": missing.Error()}
	case errors.Is(err, domain.ErrMissingCredential):
		return http.StatusInternalServerError, gin.H{"error": domain.ErrMissingCredential.Error()}
	case errors.Is(err, domain.ErrEmptyCompletion):
		return http.StatusInternalServerError, gin.H{"error": domain.ErrEmptyCompletion.Error()}
	default:
		return http.StatusInternalServerError, gin.H{"error": err.Error()}
	}
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status, body := errorResponse(err)

	entry := h.requestLog(c).WithError(err).WithField("status", status)
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Warn("request rejected")
	}

	c.JSON(status, body)
}
