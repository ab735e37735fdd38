// Package client is a typed Go client for the job tracker HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sends token as a bearer credential on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response decoded from the API envelope.
type APIError struct {
	StatusCode int
	Kind       string
	Message    string
	Details    []string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Kind, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"request_id"`
	Error     *struct {
		Kind    string   `json:"kind"`
		Details []string `json:"details"`
	} `json:"error"`
}

// File is a downloaded attachment.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// do sends req and decodes the envelope's data into out (when non-nil).
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 300 {
			return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode >= 300 || !env.Success {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: env.Message, RequestID: env.RequestID}
		if env.Error != nil {
			apiErr.Kind = env.Error.Kind
			apiErr.Details = env.Error.Details
		}
		return apiErr
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) ListJobs(ctx context.Context, statuses []string, source string) ([]Job, error) {
	q := url.Values{}
	if len(statuses) > 0 {
		q.Set("status", strings.Join(statuses, ","))
	}
	if source != "" {
		q.Set("source", source)
	}

	path := "/api/jobs"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	jobs := []Job{}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) GetJob(ctx context.Context, id string) (*Job, error) {
	var job Job
	if err := c.doJSON(ctx, http.MethodGet, "/api/jobs/"+url.PathEscape(id), nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *Client) CreateJob(ctx context.Context, input JobInput) (*Job, error) {
	var job Job
	if err := c.doJSON(ctx, http.MethodPost, "/api/jobs", input, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *Client) ReplaceJob(ctx context.Context, id string, input JobInput) (*Job, error) {
	var job Job
	if err := c.doJSON(ctx, http.MethodPut, "/api/jobs/"+url.PathEscape(id), input, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *Client) DeleteJob(ctx context.Context, id string) (*DeleteReport, error) {
	var report DeleteReport
	if err := c.doJSON(ctx, http.MethodDelete, "/api/jobs/"+url.PathEscape(id), nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *Client) SetStatus(ctx context.Context, id string, status string) (*Job, error) {
	var job Job
	body := map[string]string{"status": status}
	if err := c.doJSON(ctx, http.MethodPatch, "/api/jobs/"+url.PathEscape(id)+"/status", body, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// GetStatus returns the job's current status and the statuses it may move to.
func (c *Client) GetStatus(ctx context.Context, id string) (*JobStatus, error) {
	var st JobStatus
	if err := c.doJSON(ctx, http.MethodGet, "/api/jobs/"+url.PathEscape(id)+"/status", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *Client) Search(ctx context.Context, query SearchQuery) (*SearchResponse, error) {
	var res SearchResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/jobs/search", query, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Promote(ctx context.Context, result SearchResult) (*Job, error) {
	var job Job
	if err := c.doJSON(ctx, http.MethodPost, "/api/jobs/promote", result, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *Client) ListAttachments(ctx context.Context, jobID string) ([]Attachment, error) {
	list := []Attachment{}
	if err := c.doJSON(ctx, http.MethodGet, "/api/jobs/"+url.PathEscape(jobID)+"/attachments", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// UploadAttachment sends content as a multipart upload.
func (c *Client) UploadAttachment(ctx context.Context, jobID, fileName, fileType string, content io.Reader) (*Attachment, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("copy file: %w", err)
	}
	if fileType != "" {
		if err := mw.WriteField("file_type", fileType); err != nil {
			return nil, fmt.Errorf("write file_type: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/jobs/"+url.PathEscape(jobID)+"/attachments", &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}

	var att Attachment
	if err := c.do(req, &att); err != nil {
		return nil, err
	}
	return &att, nil
}

// DownloadAttachment fetches an attachment's content. The file name comes
// from Content-Disposition, or DefaultDownloadName when absent.
func (c *Client) DownloadAttachment(ctx context.Context, jobID, attachmentID string) (*File, error) {
	path := "/api/jobs/" + url.PathEscape(jobID) + "/attachments/" + url.PathEscape(attachmentID) + "/download"
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "*/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var env envelope
		raw, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		if json.Unmarshal(raw, &env) == nil {
			apiErr.Message = env.Message
			apiErr.RequestID = env.RequestID
			if env.Error != nil {
				apiErr.Kind = env.Error.Kind
			}
		}
		return nil, apiErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read download: %w", err)
	}

	return &File{
		Name:        FilenameFromContentDisposition(resp.Header.Get("Content-Disposition")),
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (c *Client) DeleteAttachment(ctx context.Context, attachmentID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/attachments/"+url.PathEscape(attachmentID), nil, nil)
}
