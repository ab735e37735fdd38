// Package search queries the MCP job-search server for postings on external job boards.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"job-tracker-api/internal/domain"
)

const (
	defaultTimeout = 60 * time.Second
	maxErrorBody   = 512
	maxBody        = 16 << 20
)

// MCPClient calls the job-search server's search_jobs method.
type MCPClient struct {
	baseURL string
	client  *http.Client
}

var _ domain.SearchProvider = (*MCPClient)(nil)

// NewMCPClient constructs a client for baseURL (without the /api suffix).
func NewMCPClient(baseURL string, timeout time.Duration) *MCPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &MCPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type searchParams struct {
	SiteNames     string `json:"site_names"`
	SearchTerm    string `json:"search_term"`
	Location      string `json:"location"`
	CountryIndeed string `json:"country_indeed"`
	Distance      int    `json:"distance"`
	JobType       string `json:"job_type"`
	ResultsWanted int    `json:"results_wanted"`
	HoursOld      int    `json:"hours_old"`
	IsRemote      bool   `json:"is_remote"`
	Format        string `json:"format"`
}

type searchRequest struct {
	Method string       `json:"method"`
	Params searchParams `json:"params"`
}

type searchResponse struct {
	Count   int          `json:"count"`
	Message string       `json:"message"`
	Jobs    []mcpPosting `json:"jobs"`
}

// mcpPosting mirrors one posting. Boards populate different alias fields.
type mcpPosting struct {
	JobTitle     string  `json:"jobTitle"`
	Title        string  `json:"title"`
	Summary      string  `json:"summary"`
	JobSummary   string  `json:"jobSummary"`
	Description  string  `json:"description"`
	JobURL       string  `json:"jobUrl"`
	JobURLDirect string  `json:"jobUrlDirect"`
	URL          string  `json:"url"`
	Location     string  `json:"location"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Country      string  `json:"country"`
	DatePosted   string  `json:"datePosted"`
	JobType      string  `json:"jobType"`
	Salary       string  `json:"salary"`
	MinAmount    float64 `json:"minAmount"`
	MaxAmount    float64 `json:"maxAmount"`
	IsRemote     bool    `json:"isRemote"`
	CompanyName  string  `json:"companyName"`
	Company      string  `json:"company"`
	Source       string  `json:"source"`
	Site         string  `json:"site"`
}

func buildParams(q domain.SearchQuery) searchParams {
	return searchParams{
		SiteNames:     strings.Join(q.Sites, ","),
		SearchTerm:    q.SearchTerm,
		Location:      q.Location,
		CountryIndeed: q.CountryIndeed,
		Distance:      q.Distance,
		JobType:       string(q.JobType),
		ResultsWanted: q.ResultsWanted,
		HoursOld:      q.HoursOld,
		IsRemote:      q.IsRemote,
		Format:        "json",
	}
}

// Search posts the query and normalizes the returned postings.
func (c *MCPClient) Search(ctx context.Context, q domain.SearchQuery) ([]domain.SearchResult, error) {
	body, err := json.Marshal(searchRequest{Method: "search_jobs", Params: buildParams(q)})
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call search server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("search server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return normalize(out.Jobs), nil
}

// normalize resolves alias fields, drops postings without a title and drops
// repeated URLs within one response. Order is preserved.
func normalize(postings []mcpPosting) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(postings))
	seen := make(map[string]struct{}, len(postings))

	for _, p := range postings {
		url := firstNonEmpty(p.JobURL, p.JobURLDirect, p.URL)
		if url != "" {
			if _, dup := seen[url]; dup {
				continue
			}
		}

		title := firstNonEmpty(p.JobTitle, p.Title, p.Summary)
		if title == "" {
			continue
		}
		if url != "" {
			seen[url] = struct{}{}
		}

		salary := p.Salary
		if salary == "" && (p.MinAmount > 0 || p.MaxAmount > 0) {
			salary = fmt.Sprintf("%.0f-%.0f", p.MinAmount, p.MaxAmount)
		}

		results = append(results, domain.SearchResult{
			JobTitle:    title,
			CompanyName: firstNonEmpty(p.CompanyName, p.Company),
			Location:    firstNonEmpty(p.Location, joinNonEmpty(", ", p.City, p.State, p.Country)),
			JobURL:      url,
			Description: firstNonEmpty(p.Description, p.JobSummary),
			Salary:      salary,
			JobType:     parseJobType(p.JobType),
			IsRemote:    p.IsRemote,
			Site:        firstNonEmpty(p.Site, p.Source),
			DatePosted:  p.DatePosted,
		})
	}
	return results
}

// parseJobType maps board spellings such as "FULL_TIME" or "Part-time" to a
// JobType; anything unrecognized is unset.
func parseJobType(raw string) domain.JobType {
	norm := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(raw))
	if t := domain.JobType(norm); t.Valid() {
		return t
	}
	return domain.JobTypeUnset
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func joinNonEmpty(sep string, values ...string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}
