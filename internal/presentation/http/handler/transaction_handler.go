package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/ledgerbook/internal/application/service"
	"github.com/sangkips/ledgerbook/internal/presentation/http/dto/request"
	"github.com/sangkips/ledgerbook/internal/presentation/http/dto/response"
)

// TransactionHandler handles confirmation and balance adjustment requests
type TransactionHandler struct {
	ledgerService  *service.LedgerService
	balanceService *service.BalanceService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(ledgerService *service.LedgerService, balanceService *service.BalanceService) *TransactionHandler {
	return &TransactionHandler{ledgerService: ledgerService, balanceService: balanceService}
}

// Confirm submits the pending transaction for the customer in the path
func (h *TransactionHandler) Confirm(c *gin.Context) {
	var req request.ConfirmTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.ledgerService.Confirm(c.Request.Context(), c.Param("id"), req.AmountPaid)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction confirmed successfully", output)
}

// AdjustBalance settles, part-pays or overpays a customer's balance
func (h *TransactionHandler) AdjustBalance(c *gin.Context) {
	var req request.AdjustBalanceRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.balanceService.Adjust(c.Request.Context(), &service.AdjustInput{
		CustomerID: c.Param("id"),
		Mode:       *req.Mode,
		Amount:     req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Balance updated successfully", output)
}
