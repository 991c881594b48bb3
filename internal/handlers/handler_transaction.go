package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/budget_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker_app/internal/dto"
	"github.com/SscSPs/budget_tracker_app/internal/middleware"
	"github.com/SscSPs/budget_tracker_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to income and expense transactions.
type transactionHandler struct {
	txnService portssvc.TransactionSvcFacade
	analytics  *utils.PosthogClientWrapper
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, txnService portssvc.TransactionSvcFacade, analytics *utils.PosthogClientWrapper) {
	h := &transactionHandler{txnService: txnService, analytics: analytics}

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.createTransaction)
		txns.GET("", h.listTransactions)
		txns.GET("/:transactionID", h.getTransaction)
		txns.PUT("/:transactionID", h.updateTransaction)
		txns.DELETE("/:transactionID", h.deleteTransaction)
	}
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Records an income or expense and applies it to the account balance
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or invisible category"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	txn, err := h.txnService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err, "Failed to create transaction")
		return
	}
	middleware.PosthogEvent(c, h.analytics, utils.EventTransactionCreated, map[string]any{
		"type":   string(txn.Type),
		"source": string(txn.Source),
	})
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists the user's transactions newest first, optionally for one month and/or year of the ledger timezone
// @Tags transactions
// @Produce json
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Page size (max 100)" default(20)
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	txns, next, err := h.txnService.ListTransactions(c.Request.Context(), userID, params.Filter(), params.Page())
	if err != nil {
		respondWithError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns, next))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Tags transactions
// @Produce json
// @Param transactionID path int true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	txnID, ok := pathID(c, "transactionID")
	if !ok {
		return
	}
	txn, err := h.txnService.GetTransactionByID(c.Request.Context(), userID, txnID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Replace a transaction
// @Description Overwrites every field and moves the balance effect accordingly
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path int true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "New transaction values"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	txnID, ok := pathID(c, "transactionID")
	if !ok {
		return
	}
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	txn, err := h.txnService.UpdateTransaction(c.Request.Context(), userID, txnID, req)
	if err != nil {
		respondWithError(c, err, "Failed to update transaction")
		return
	}
	middleware.PosthogEvent(c, h.analytics, utils.EventTransactionUpdated, nil)
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Deletes the transaction and reverses its balance effect
// @Tags transactions
// @Param transactionID path int true "Transaction ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	txnID, ok := pathID(c, "transactionID")
	if !ok {
		return
	}
	if err := h.txnService.DeleteTransaction(c.Request.Context(), userID, txnID); err != nil {
		respondWithError(c, err, "Failed to delete transaction")
		return
	}
	middleware.PosthogEvent(c, h.analytics, utils.EventTransactionDeleted, nil)
	c.Status(http.StatusNoContent)
}
