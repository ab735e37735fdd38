package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"job-tracker-api/internal/delivery/http/response"
	"job-tracker-api/internal/usecase"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

// Health godoc
// @Summary      Service health
// @Description  Liveness plus a check of each configured dependency
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response{data=usecase.HealthReport}
// @Failure      503  {object}  response.Response{data=usecase.HealthReport}
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	if h.healthUC == nil {
		response.Success(c, http.StatusOK, "System operational", usecase.HealthReport{Status: "ok"})
		return
	}

	report := h.healthUC.Check(c.Request.Context())
	if report.Status != "ok" {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Success:   false,
			Message:   "System degraded",
			Data:      report,
			RequestID: c.GetString("RequestID"),
		})
		return
	}
	response.Success(c, http.StatusOK, "System operational", report)
}
