package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/ledgerbook/internal/application/service"
	"github.com/sangkips/ledgerbook/internal/presentation/http/dto/request"
	"github.com/sangkips/ledgerbook/internal/presentation/http/dto/response"
)

// PreferencesHandler handles preferences-related HTTP requests
type PreferencesHandler struct {
	preferencesService *service.PreferencesService
}

// NewPreferencesHandler creates a new preferences handler
func NewPreferencesHandler(preferencesService *service.PreferencesService) *PreferencesHandler {
	return &PreferencesHandler{preferencesService: preferencesService}
}

// Get retrieves the preferences
func (h *PreferencesHandler) Get(c *gin.Context) {
	prefs, err := h.preferencesService.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Preferences retrieved successfully", prefs)
}

// Update changes the preferences. A new tax percentage is the starting rate
// of the next gateway run; the pending transaction keeps its own.
func (h *PreferencesHandler) Update(c *gin.Context) {
	var req request.PreferencesRequest
	if !bindJSON(c, &req) {
		return
	}

	prefs, err := h.preferencesService.Update(c.Request.Context(), &service.UpdatePreferencesInput{
		Theme:         req.Theme,
		TaxPercentage: req.TaxPercentage,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Preferences updated successfully", prefs)
}
