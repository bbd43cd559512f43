package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ibpath/ibpath-api/internal/models"
	"github.com/ibpath/ibpath-api/internal/service"
	appErrors "github.com/ibpath/ibpath-api/pkg/errors"
	"github.com/ibpath/ibpath-api/pkg/response"
)

// ProgramHandler exposes the program catalog endpoints.
type ProgramHandler struct {
	programs *service.ProgramService
}

// NewProgramHandler constructs a program handler.
func NewProgramHandler(programs *service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programs: programs}
}

// List returns catalog programs.
// @Summary List programs
// @Tags Programs
// @Produce json
// @Param search query string false "Search by program or university name"
// @Param field_id query string false "Filter by field of study"
// @Param country_id query string false "Filter by country"
// @Param sort_by query string false "Sort column" Enums(name, university, min_ib_points, created_at)
// @Param sort_order query string false "Sort direction" Enums(asc, desc)
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /programs [get]
func (h *ProgramHandler) List(c *gin.Context) {
	if h.programs == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	filter := models.ProgramFilter{
		Search:    c.Query("search"),
		FieldID:   c.Query("field_id"),
		CountryID: c.Query("country_id"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}
	programs, pagination, err := h.programs.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, programs, pagination)
}
