package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/budget_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type receiptHandler struct {
	receiptService portssvc.ReceiptSvcFacade
}

func registerReceiptRoutes(rg *gin.RouterGroup, receiptService portssvc.ReceiptSvcFacade) {
	h := &receiptHandler{receiptService: receiptService}

	receipts := rg.Group("/receipts")
	{
		receipts.GET("", h.listReceipts)
		receipts.POST("", h.createReceipt)
	}
}

// createReceipt godoc
// @Summary Store receipt metadata
// @Tags receipts
// @Accept json
// @Produce json
// @Param receipt body dto.CreateReceiptRequest true "Receipt metadata"
// @Success 201 {object} dto.ReceiptResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /receipts [post]
func (h *receiptHandler) createReceipt(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err, "Failed to create receipt")
		return
	}
	c.JSON(http.StatusCreated, dto.ToReceiptResponse(*receipt))
}

// listReceipts godoc
// @Summary List receipts
// @Tags receipts
// @Produce json
// @Success 200 {array} dto.ReceiptResponse
// @Security BearerAuth
// @Router /receipts [get]
func (h *receiptHandler) listReceipts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	receipts, err := h.receiptService.ListReceipts(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to list receipts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListReceiptResponse(receipts))
}
