package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"arena/core/internal/service"
	"arena/core/pkg/response"
)

// respondError writes the envelope for a service error. Internal failures are logged in full
// and reported to the client without detail.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	msg := err.Error()
	var se *service.Error
	if errors.As(err, &se) {
		msg = se.Message
	}

	switch service.KindOf(err) {
	case service.KindNotFound:
		response.NotFound(c, msg)
	case service.KindValidation:
		response.BadRequest(c, msg)
	case service.KindConflict:
		response.Conflict(c, msg)
	default:
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		response.InternalError(c, "internal server error")
	}
}
