package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ibpath/ibpath-api/internal/service"
	appErrors "github.com/ibpath/ibpath-api/pkg/errors"
	"github.com/ibpath/ibpath-api/pkg/response"
)

// MatchHandler exposes program matching endpoints.
type MatchHandler struct {
	matches *service.MatchService
	exports *service.ExportService
}

// NewMatchHandler constructs a match handler.
func NewMatchHandler(matches *service.MatchService, exports *service.ExportService) *MatchHandler {
	return &MatchHandler{matches: matches, exports: exports}
}

// List returns the student's scored match list.
// @Summary List program matches
// @Tags Matches
// @Produce json
// @Param id path string true "Student ID"
// @Param mode query string false "Score mode"
// @Param category query string false "Filter by category (SAFETY, MATCH, REACH, UNLIKELY)"
// @Param min_score query number false "Minimum overall score"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/matches [get]
func (h *MatchHandler) List(c *gin.Context) {
	if h.matches == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	query := parseMatchQuery(c)
	start := time.Now()
	list, err := h.matches.Matches(c.Request.Context(), c.Param("id"), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{
		"mode":               list.Mode,
		"cached":             list.Cached,
		"processing_time_ms": time.Since(start).Milliseconds(),
	}
	response.JSON(c, http.StatusOK, list.Items, &list.Pagination, meta)
}

// Preview scores an ad-hoc profile without persisting anything.
// @Summary Preview matches for an unsaved profile
// @Tags Matches
// @Accept json
// @Produce json
// @Param payload body service.MatchPreviewRequest true "Profile payload"
// @Success 200 {object} response.Envelope
// @Router /matches/preview [post]
func (h *MatchHandler) Preview(c *gin.Context) {
	if h.matches == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req service.MatchPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid preview payload"))
		return
	}
	start := time.Now()
	list, err := h.matches.Preview(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{
		"mode":               list.Mode,
		"processing_time_ms": time.Since(start).Milliseconds(),
	}
	response.JSON(c, http.StatusOK, list.Items, &list.Pagination, meta)
}

// Export downloads the full match list as CSV or PDF.
// @Summary Export program matches
// @Tags Matches
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Student ID"
// @Param mode query string false "Score mode"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Router /students/{id}/matches/export [get]
func (h *MatchHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.exports.MatchList(c.Request.Context(), c.Param("id"), c.Query("mode"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Body)
}

func parseMatchQuery(c *gin.Context) service.MatchQuery {
	query := service.MatchQuery{
		Mode:     c.Query("mode"),
		Category: c.Query("category"),
	}
	if score, err := strconv.ParseFloat(c.Query("min_score"), 64); err == nil {
		query.MinScore = score
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		query.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		query.PageSize = size
	}
	return query
}
