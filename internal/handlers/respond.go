package handlers

import (
	"log"
	"math"
	"net/http"

	"pathxpress/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// respondError maps the error taxonomy onto HTTP statuses, keeping
// internal details out of the response body.
func respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{
		"error": apperrors.MessageOf(err),
		"code":  apperrors.CodeOf(err),
	})
}

// round2 rounds a money amount to 2 decimal places, half up.
// Calculators keep full precision; rounding happens only here at the
// HTTP boundary.
func round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
