package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ibpath/ibpath-api/internal/service"
	appErrors "github.com/ibpath/ibpath-api/pkg/errors"
	"github.com/ibpath/ibpath-api/pkg/response"
)

// DiplomaHandler exposes the ad-hoc diploma rule checker.
type DiplomaHandler struct {
	diploma *service.DiplomaService
}

// NewDiplomaHandler constructs a diploma handler.
func NewDiplomaHandler(diploma *service.DiplomaService) *DiplomaHandler {
	return &DiplomaHandler{diploma: diploma}
}

// Check evaluates the IB award rules against a submitted grade set.
// @Summary Check diploma award rules
// @Tags Diploma
// @Accept json
// @Produce json
// @Param payload body service.DiplomaCheckRequest true "Grade set"
// @Success 200 {object} response.Envelope
// @Router /diploma/check [post]
func (h *DiplomaHandler) Check(c *gin.Context) {
	if h.diploma == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req service.DiplomaCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid diploma check payload"))
		return
	}
	result, err := h.diploma.Check(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
