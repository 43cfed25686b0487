package handler

import (
	"errors"
	"net/http"

	"logitrack/internal/logger"
	"logitrack/internal/middleware"
	appErrors "logitrack/pkg/errors"
	"logitrack/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondWithError translates operation-level failures into HTTP status
// codes with a JSON message body. Anything unclassified becomes a 500
// with a generic message; internals never leak to the client.
func respondWithError(c *gin.Context, err error) {
	var appErr *appErrors.AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode()
		if status == http.StatusInternalServerError {
			logger.Error("Request failed",
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.Error(err),
			)
			utils.ErrorResponse(c, status, "Internal server error")
			return
		}
		utils.ErrorResponse(c, status, appErr.Message)
		return
	}

	logger.Error("Unhandled error",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err),
	)
	utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
}
