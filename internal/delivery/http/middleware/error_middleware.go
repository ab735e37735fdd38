package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"job-tracker-api/internal/delivery/http/response"
	"job-tracker-api/pkg/apperror"
	"job-tracker-api/pkg/logger"
)

// ErrorHandler renders the last error a handler attached with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("request failed",
					"request_id", c.GetString("RequestID"), "kind", appErr.Kind, "error", appErr.Err)
			}
			response.Error(c, appErr.Code, appErr.Message, response.ErrorBody{
				Kind:    string(appErr.Kind),
				Details: appErr.Details,
			})
			return
		}

		// Never expose internal error details to clients.
		logger.Log.Error("unhandled error", "request_id", c.GetString("RequestID"), "error", err)
		response.Error(c, http.StatusInternalServerError,
			"An unexpected error occurred. Please try again later.",
			response.ErrorBody{Kind: string(apperror.KindInternal)})
	}
}
