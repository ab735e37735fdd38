package v1

import (
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"job-tracker-api/internal/delivery/http/response"
	"job-tracker-api/internal/domain"
	"job-tracker-api/internal/usecase"
	"job-tracker-api/pkg/apperror"
)

type JobHandler struct {
	jobUC       domain.JobUsecase
	lifecycleUC domain.LifecycleUsecase
	exportUC    domain.ExportUsecase
}

func NewJobHandler(api *gin.RouterGroup, jobUC domain.JobUsecase, lifecycleUC domain.LifecycleUsecase, exportUC domain.ExportUsecase) {
	handler := &JobHandler{jobUC: jobUC, lifecycleUC: lifecycleUC, exportUC: exportUC}

	jobs := api.Group("/jobs")
	{
		jobs.GET("", handler.List)
		jobs.POST("", handler.Create)
		jobs.GET("/export", handler.Export)
		jobs.GET("/:id", handler.Get)
		jobs.PUT("/:id", handler.Replace)
		jobs.DELETE("/:id", handler.Delete)
		jobs.GET("/:id/status", handler.GetStatus)
		jobs.PATCH("/:id/status", handler.SetStatus)
	}
}

// JobRequest is the editable payload of a job.
type JobRequest struct {
	JobTitle    string  `json:"job_title" example:"Backend Engineer"`
	CompanyName *string `json:"company_name"`
	Location    *string `json:"location"`
	JobURL      string  `json:"job_url" example:"https://example.com/jobs/1"`
	Description *string `json:"description"`
	Salary      *string `json:"salary"`
	JobType     string  `json:"job_type" enums:"fulltime,parttime,contract,internship"`
	IsRemote    bool    `json:"is_remote"`
	Notes       *string `json:"notes"`
	Source      string  `json:"source"`
}

func (r JobRequest) toInput() domain.JobInput {
	return domain.JobInput{
		JobTitle:    r.JobTitle,
		CompanyName: r.CompanyName,
		Location:    r.Location,
		JobURL:      r.JobURL,
		Description: r.Description,
		Salary:      r.Salary,
		JobType:     domain.JobType(r.JobType),
		IsRemote:    r.IsRemote,
		Notes:       r.Notes,
		Source:      r.Source,
	}
}

type StatusRequest struct {
	Status string `json:"status" binding:"required" enums:"new,viewed,applied,rejected,shortlisted"`
}

type StatusResponse struct {
	JobID          string             `json:"job_id"`
	Status         domain.JobStatus   `json:"status"`
	AllowedTargets []domain.JobStatus `json:"allowed_targets"`
}

func bindError(err error) error {
	return apperror.Validation("Invalid request body", err.Error())
}

// splitCSV splits a comma separated query value, dropping blanks.
func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ListJobs godoc
// @Summary      List tracked jobs
// @Description  List jobs newest first, optionally filtered by status (comma separated) and source
// @Tags         jobs
// @Produce      json
// @Param        status  query     string  false  "Statuses, e.g. new,applied"
// @Param        source  query     string  false  "Source, e.g. manual or mcp"
// @Success      200     {object}  response.Response{data=[]domain.Job}
// @Failure      400     {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobUC.ListJobs(c.Request.Context(), filterFromQuery(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job list", jobs)
}

func filterFromQuery(c *gin.Context) domain.JobFilter {
	var filter domain.JobFilter
	for _, s := range splitCSV(c.Query("status")) {
		filter.Statuses = append(filter.Statuses, domain.JobStatus(s))
	}
	filter.Source = strings.TrimSpace(c.Query("source"))
	return filter
}

// ExportJobs godoc
// @Summary      Export tracked jobs
// @Description  Download the (optionally filtered) job list as a spreadsheet
// @Tags         jobs
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,text/csv
// @Param        status  query     string  false  "Statuses, e.g. new,applied"
// @Param        source  query     string  false  "Source, e.g. manual or mcp"
// @Param        format  query     string  false  "Export format (xlsx, csv). Default: xlsx"
// @Success      200     {file}    binary
// @Failure      400     {object}  response.Response
// @Router       /jobs/export [get]
func (h *JobHandler) Export(c *gin.Context) {
	exp, err := h.exportUC.ExportJobs(c.Request.Context(), filterFromQuery(c), c.Query("format"))
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": exp.FileName}))
	c.Data(http.StatusOK, exp.ContentType, exp.Data)
}

// CreateJob godoc
// @Summary      Track a new job
// @Description  Create a job with status new. Source defaults to manual.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Router       /jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), req.toInput())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", job)
}

// GetJob godoc
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobUC.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job details", job)
}

// ReplaceJob godoc
// @Summary      Replace a job
// @Description  Replace every editable field. Status and creation time are kept.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string      true  "Job ID"
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
func (h *JobHandler) Replace(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	job, err := h.jobUC.ReplaceJob(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated", job)
}

// DeleteJob godoc
// @Summary      Delete a job
// @Description  Delete a job together with its attachments
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.DeleteReport}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	report, err := h.jobUC.DeleteJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job deleted", report)
}

// GetJobStatus godoc
// @Summary      Get a job's lifecycle status
// @Description  Current status and the statuses it may move to
// @Tags         lifecycle
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=StatusResponse}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/status [get]
func (h *JobHandler) GetStatus(c *gin.Context) {
	job, err := h.jobUC.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job status", StatusResponse{
		JobID:          job.ID,
		Status:         job.Status,
		AllowedTargets: usecase.AllowedTargets(job.Status),
	})
}

// SetJobStatus godoc
// @Summary      Move a job to a lifecycle status
// @Tags         lifecycle
// @Accept       json
// @Produce      json
// @Param        id      path      string         true  "Job ID"
// @Param        status  body      StatusRequest  true  "Target status"
// @Success      200     {object}  response.Response{data=domain.Job}
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /jobs/{id}/status [patch]
func (h *JobHandler) SetStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.InvalidStatus("Status is required", domain.ErrInvalidStatus))
		return
	}

	job, err := h.lifecycleUC.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job status updated", job)
}
