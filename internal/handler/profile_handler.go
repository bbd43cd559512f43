package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ibpath/ibpath-api/internal/service"
	appErrors "github.com/ibpath/ibpath-api/pkg/errors"
	"github.com/ibpath/ibpath-api/pkg/response"
)

// ProfileHandler exposes student academic profile endpoints.
type ProfileHandler struct {
	profiles *service.ProfileService
}

// NewProfileHandler constructs a profile handler.
func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Get returns the student's academic profile with the diploma verdict.
// @Summary Get academic profile
// @Tags Profiles
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	if h.profiles == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	view, err := h.profiles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Put replaces the student's academic profile.
// @Summary Replace academic profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body service.ProfileUpdateRequest true "Profile payload"
// @Success 200 {object} response.Envelope
// @Router /students/{id}/profile [put]
func (h *ProfileHandler) Put(c *gin.Context) {
	if h.profiles == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req service.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload"))
		return
	}
	view, err := h.profiles.Put(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}
