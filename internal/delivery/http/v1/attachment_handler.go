package v1

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"job-tracker-api/internal/delivery/http/response"
	"job-tracker-api/internal/domain"
	"job-tracker-api/pkg/apperror"
)

// multipartOverhead is the allowance for form boundaries and fields on top of the file itself.
const multipartOverhead = 1 << 20

type AttachmentHandler struct {
	attachmentUC domain.AttachmentUsecase
	maxSize      int64
}

func NewAttachmentHandler(api *gin.RouterGroup, attachmentUC domain.AttachmentUsecase, maxSize int64, uploadLimit gin.HandlerFunc) {
	handler := &AttachmentHandler{attachmentUC: attachmentUC, maxSize: maxSize}

	upload := []gin.HandlerFunc{handler.Upload}
	if uploadLimit != nil {
		upload = append([]gin.HandlerFunc{uploadLimit}, upload...)
	}

	jobAttachments := api.Group("/jobs/:id/attachments")
	{
		jobAttachments.GET("", handler.List)
		jobAttachments.POST("", upload...)
		jobAttachments.GET("/:attachmentId", handler.Get)
		jobAttachments.GET("/:attachmentId/download", handler.Download)
	}

	api.DELETE("/attachments/:attachmentId", handler.Delete)
}

// ListAttachments godoc
// @Summary      List a job's attachments
// @Tags         attachments
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=[]domain.Attachment}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/attachments [get]
func (h *AttachmentHandler) List(c *gin.Context) {
	list, err := h.attachmentUC.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Attachment list", list)
}

// UploadAttachment godoc
// @Summary      Upload a resume or cover letter
// @Description  PDF, DOC or DOCX up to 10 MiB
// @Tags         attachments
// @Accept       multipart/form-data
// @Produce      json
// @Param        id         path      string  true   "Job ID"
// @Param        file       formData  file    true   "Document"
// @Param        file_type  formData  string  false  "resume (default) or cover_letter"
// @Success      201        {object}  response.Response{data=domain.Attachment}
// @Failure      400        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Failure      429        {object}  response.Response
// @Router       /jobs/{id}/attachments [post]
func (h *AttachmentHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxSize+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.Error(apperror.Validation("File too large. Maximum size is " + formatMiB(h.maxSize)))
			return
		}
		c.Error(apperror.Validation("File is required", "File: is required"))
		return
	}

	fileType := c.DefaultPostForm("file_type", string(domain.FileTypeResume))

	f, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Validation("Could not read uploaded file"))
		return
	}
	defer f.Close()

	// One byte past the limit is enough for the size check to fail.
	data, err := io.ReadAll(io.LimitReader(f, h.maxSize+1))
	if err != nil {
		c.Error(apperror.Validation("Could not read uploaded file"))
		return
	}

	att, err := h.attachmentUC.Upload(c.Request.Context(), domain.UploadInput{
		JobID:    c.Param("id"),
		FileName: fileHeader.Filename,
		FileType: domain.FileType(fileType),
		Data:     data,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Attachment uploaded", att)
}

// GetAttachment godoc
// @Summary      Get attachment metadata
// @Tags         attachments
// @Produce      json
// @Param        id            path      string  true  "Job ID"
// @Param        attachmentId  path      string  true  "Attachment ID"
// @Success      200           {object}  response.Response{data=domain.Attachment}
// @Failure      404           {object}  response.Response
// @Router       /jobs/{id}/attachments/{attachmentId} [get]
func (h *AttachmentHandler) Get(c *gin.Context) {
	att, err := h.attachmentUC.Get(c.Request.Context(), c.Param("id"), c.Param("attachmentId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Attachment details", att)
}

// DownloadAttachment godoc
// @Summary      Download an attachment
// @Tags         attachments
// @Produce      application/octet-stream
// @Param        id            path  string  true  "Job ID"
// @Param        attachmentId  path  string  true  "Attachment ID"
// @Success      200           {file}    binary
// @Failure      404           {object}  response.Response
// @Router       /jobs/{id}/attachments/{attachmentId}/download [get]
func (h *AttachmentHandler) Download(c *gin.Context) {
	dl, err := h.attachmentUC.Download(c.Request.Context(), c.Param("id"), c.Param("attachmentId"))
	if err != nil {
		c.Error(err)
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": dl.Attachment.FileName})
	if disposition == "" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", disposition)
	c.Header("Cache-Control", "private, no-store")
	c.Data(http.StatusOK, dl.MIMEType, dl.Data)
}

// DeleteAttachment godoc
// @Summary      Delete an attachment
// @Tags         attachments
// @Produce      json
// @Param        attachmentId  path      string  true  "Attachment ID"
// @Success      200           {object}  response.Response
// @Failure      404           {object}  response.Response
// @Router       /attachments/{attachmentId} [delete]
func (h *AttachmentHandler) Delete(c *gin.Context) {
	if err := h.attachmentUC.Delete(c.Request.Context(), c.Param("attachmentId")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Attachment deleted", gin.H{"id": c.Param("attachmentId")})
}

func formatMiB(n int64) string {
	return strconv.FormatInt(n/(1024*1024), 10) + " MiB"
}
