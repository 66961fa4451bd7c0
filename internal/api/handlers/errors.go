package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/pkg/errors"
)

// respondError maps typed errors to a status; anything else is logged and
// reported as a 500 with the given message.
func respondError(c *gin.Context, logger *zap.Logger, err error, message string) {
	var (
		validation *errors.ErrValidation
		notFound   *errors.ErrNotFound
		transition *errors.ErrInvalidStateTransition
		unauth     *errors.ErrUnauthorized
	)

	switch {
	case stderrors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case stderrors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case stderrors.As(err, &transition):
		c.JSON(http.StatusBadRequest, gin.H{"error": transition.Error()})
	case stderrors.As(err, &unauth):
		c.JSON(http.StatusUnauthorized, gin.H{"error": unauth.Error()})
	default:
		logger.Error(message, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":   "validation failed",
		"details": err.Error(),
	})
}
