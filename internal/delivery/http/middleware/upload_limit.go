package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"job-tracker-api/internal/delivery/http/response"
	"job-tracker-api/pkg/apperror"
	"job-tracker-api/pkg/logger"
	"job-tracker-api/pkg/security"
)

// UploadLimitMiddleware applies the per-IP and per-job upload quotas. Only
// accepted uploads keep their slot; a failed request releases it again.
// A nil limiter disables the check.
func UploadLimitMiddleware(limiter *security.UploadLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		res, err := limiter.AllowUpload(c.Request.Context(), c.ClientIP(), c.Param("id"))
		if err != nil && !errors.Is(err, security.ErrLimiterUnavailable) {
			logger.Log.Warn("upload limiter error", "job_id", c.Param("id"), "error", err)
		}
		if !res.Allowed {
			if res.RetryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(res.RetryAfter))
			}
			response.Abort(c, http.StatusTooManyRequests,
				"Upload limit exceeded. Please try again later.", string(apperror.KindTooManyRequests))
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			if err := limiter.Release(context.WithoutCancel(c.Request.Context()), res); err != nil {
				logger.Log.Warn("failed to release upload slot", "job_id", c.Param("id"), "error", err)
			}
		}
	}
}
