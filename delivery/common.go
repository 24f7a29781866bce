package delivery

import (
	"errors"
	"net/http"

	"github.com/bbois1999/gun-event/domain"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// respondError maps core errors to HTTP statuses at the route boundary.
// Client-facing text must never reveal whether an email or phone lookup
// succeeded before verification failed; the sentinel messages are already
// written that way.
func respondError(c *gin.Context, err error) {
	var conflict *domain.ConflictError
	var provider *domain.ProviderError

	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": conflict.Error()})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNoPendingVerification),
		errors.Is(err, domain.ErrInvalidCode),
		errors.Is(err, domain.ErrAlreadyLiked),
		errors.Is(err, domain.ErrLikeNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrPostNotFound),
		errors.Is(err, domain.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotVerified),
		errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &provider):
		// Downstream detail goes to the log; the client only learns the
		// verification service is down, not which call failed.
		log.Error().Err(err).Str("provider", provider.Provider).Msg("provider failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification service unavailable"})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
	}
}
