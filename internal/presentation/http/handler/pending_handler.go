package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/ledgerbook/internal/application/service"
	"github.com/sangkips/ledgerbook/internal/presentation/http/dto/request"
	"github.com/sangkips/ledgerbook/internal/presentation/http/dto/response"
	"github.com/sangkips/ledgerbook/pkg/utils"
)

// PendingHandler handles edits to the pending transaction
type PendingHandler struct {
	ledgerService *service.LedgerService
}

// NewPendingHandler creates a new pending transaction handler
func NewPendingHandler(ledgerService *service.LedgerService) *PendingHandler {
	return &PendingHandler{ledgerService: ledgerService}
}

// Get returns the pending transaction with its totals
func (h *PendingHandler) Get(c *gin.Context) {
	response.OK(c, "Pending transaction retrieved successfully", h.ledgerService.Pending())
}

// UpdateDetails changes the date and/or tax percentage
func (h *PendingHandler) UpdateDetails(c *gin.Context) {
	var req request.PendingDetailsRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.EditDetailsInput{TaxPercentage: req.TaxPercentage}
	if req.Date != nil {
		date := req.Date.Time
		input.Date = &date
	}

	pending, err := h.ledgerService.EditDetails(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pending transaction updated successfully", pending)
}

// Discard clears the pending transaction
func (h *PendingHandler) Discard(c *gin.Context) {
	response.OK(c, "Pending transaction cleared", h.ledgerService.Discard())
}

// AddItem appends a line item
func (h *PendingHandler) AddItem(c *gin.Context) {
	var req request.ItemRequest
	if !bindJSON(c, &req) {
		return
	}

	pending, item, err := h.ledgerService.AddItem(req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item added successfully", gin.H{
		"item":    item,
		"pending": pending,
	})
}

// UpdateItem edits a line item. An unknown item ID changes nothing.
func (h *PendingHandler) UpdateItem(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("item_id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req request.ItemRequest
	if !bindJSON(c, &req) {
		return
	}

	pending, err := h.ledgerService.UpdateItem(id, req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated successfully", pending)
}

// DeleteItem removes a line item
func (h *PendingHandler) DeleteItem(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("item_id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	response.OK(c, "Item removed successfully", h.ledgerService.DeleteItem(id))
}
