package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"job-tracker-api/internal/delivery/http/response"
	"job-tracker-api/internal/domain"
)

type SearchHandler struct {
	searchUC domain.SearchUsecase
}

// NewSearchHandler registers the search routes. limit, when non-nil, guards
// the provider-backed search endpoint.
func NewSearchHandler(api *gin.RouterGroup, searchUC domain.SearchUsecase, limit gin.HandlerFunc) {
	handler := &SearchHandler{searchUC: searchUC}

	search := []gin.HandlerFunc{handler.Search}
	if limit != nil {
		search = append([]gin.HandlerFunc{limit}, search...)
	}

	jobs := api.Group("/jobs")
	{
		jobs.POST("/search", search...)
		jobs.POST("/promote", handler.Promote)
	}
}

// SearchRequest mirrors the job-search server parameters. Sites may be given
// either as a list or as a comma separated site_names string.
type SearchRequest struct {
	SearchTerm    string   `json:"search_term" example:"golang developer"`
	Location      string   `json:"location" example:"Berlin"`
	Sites         []string `json:"sites"`
	SiteNames     string   `json:"site_names" example:"indeed,linkedin"`
	JobType       string   `json:"job_type" enums:"fulltime,parttime,contract,internship"`
	IsRemote      bool     `json:"is_remote"`
	ResultsWanted int      `json:"results_wanted" example:"20"`
	HoursOld      int      `json:"hours_old" example:"72"`
	Distance      int      `json:"distance" example:"50"`
	CountryIndeed string   `json:"country_indeed" example:"germany"`
}

func (r SearchRequest) toQuery() domain.SearchQuery {
	sites := r.Sites
	if len(sites) == 0 {
		sites = splitCSV(r.SiteNames)
	}
	return domain.SearchQuery{
		SearchTerm:    r.SearchTerm,
		Location:      r.Location,
		Sites:         sites,
		JobType:       domain.JobType(r.JobType),
		IsRemote:      r.IsRemote,
		ResultsWanted: r.ResultsWanted,
		HoursOld:      r.HoursOld,
		Distance:      r.Distance,
		CountryIndeed: r.CountryIndeed,
	}
}

// SearchJobs godoc
// @Summary      Search job boards
// @Description  Query the job-search server and mark results whose URL is already tracked as saved
// @Tags         search
// @Accept       json
// @Produce      json
// @Param        query  body      SearchRequest  true  "Search parameters"
// @Success      200    {object}  response.Response{data=domain.SearchResponse}
// @Failure      400    {object}  response.Response
// @Failure      429    {object}  response.Response
// @Failure      502    {object}  response.Response
// @Router       /jobs/search [post]
func (h *SearchHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	res, err := h.searchUC.Search(c.Request.Context(), req.toQuery())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Search results", res)
}

// PromoteJob godoc
// @Summary      Save a search result
// @Description  Create a tracked job from a search result with source mcp
// @Tags         search
// @Accept       json
// @Produce      json
// @Param        result  body      domain.SearchResult  true  "Search result"
// @Success      201     {object}  response.Response{data=domain.Job}
// @Failure      400     {object}  response.Response
// @Router       /jobs/promote [post]
func (h *SearchHandler) Promote(c *gin.Context) {
	var result domain.SearchResult
	if err := c.ShouldBindJSON(&result); err != nil {
		c.Error(bindError(err))
		return
	}

	job, err := h.searchUC.Promote(c.Request.Context(), result)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job saved", job)
}
