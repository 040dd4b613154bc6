package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/codyseavey/card-inventory/backend/internal/models"
)

const (
	defaultPageLimit = 100
	maxPageLimit     = 1000
)

// respondError writes the status and body for err. Unknown errors are
// logged and reported without detail.
func respondError(c *gin.Context, err error) {
	var notFound *models.NotFoundError
	var invalid *models.ValidationError

	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "details": invalid.Fields})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, models.ErrBadUploadFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be a CSV"})
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func invalidField(c *gin.Context, field, msg string) {
	respondError(c, &models.ValidationError{Fields: map[string]string{field: msg}})
}

// parseID reads a positive numeric path parameter.
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, fmt.Sprintf("invalid %s", param))
		return 0, false
	}
	return uint(id), true
}

// queryInt reads an optional integer query parameter within [min, max].
// A response has been written when ok is false.
func queryInt(c *gin.Context, name string, def, min, max int) (int, bool) {
	raw, present := c.GetQuery(name)
	if !present || raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		badRequest(c, fmt.Sprintf("%s must be an integer", name))
		return 0, false
	}
	if v < min || v > max {
		invalidField(c, name, fmt.Sprintf("must be between %d and %d", min, max))
		return 0, false
	}
	return v, true
}

// pagination reads skip and limit.
func pagination(c *gin.Context) (skip, limit int, ok bool) {
	if skip, ok = queryInt(c, "skip", 0, 0, math.MaxInt32); !ok {
		return 0, 0, false
	}
	if limit, ok = queryInt(c, "limit", defaultPageLimit, 1, maxPageLimit); !ok {
		return 0, 0, false
	}
	return skip, limit, true
}
