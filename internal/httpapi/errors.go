package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bazaar-orders/internal/domain"
)

// respondError maps the error taxonomy onto HTTP statuses. Anything outside
// the taxonomy is a persistence or programming failure and surfaces as a
// generic 500 so internals do not leak.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
