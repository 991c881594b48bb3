package dto

import (
	"time"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/SscSPs/budget_tracker_app/internal/utils"
	"github.com/shopspring/decimal"
)

// TransactionRequest is the body of both create and update; update overwrites every field.
type TransactionRequest struct {
	Amount      decimal.Decimal        `json:"amount" binding:"required,money"`
	Description *string                `json:"description" binding:"omitempty,max=500"`
	CategoryID  int64                  `json:"category_id" binding:"required,gt=0"`
	AccountID   int64                  `json:"account_id" binding:"required,gt=0"`
	Type        domain.TransactionType `json:"type" binding:"required,oneof=income expense"`
	Source      domain.SourceType      `json:"source" binding:"omitempty,oneof=manual bank ml"` // Defaults to manual
}

// CreateTransactionRequest defines the data needed to record a transaction.
type CreateTransactionRequest = TransactionRequest

// UpdateTransactionRequest defines the replacement values of a transaction.
type UpdateTransactionRequest = TransactionRequest

// ToDomain builds the transaction described by the request for userID.
func (r TransactionRequest) ToDomain(userID int64) domain.Transaction {
	source := r.Source
	if source == "" {
		source = domain.SourceManual
	}
	txn := domain.Transaction{
		UserID:     userID,
		AccountID:  r.AccountID,
		CategoryID: r.CategoryID,
		Amount:     r.Amount,
		Type:       r.Type,
		Source:     source,
	}
	if r.Description != nil {
		txn.Description = *r.Description
	}
	return txn
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Month  *int `form:"month" binding:"omitempty,min=1,max=12"`
	Year   *int `form:"year" binding:"omitempty,min=1970,max=9999"`
	Offset int  `form:"offset,default=0" binding:"min=0"`
	Limit  int  `form:"limit,default=20" binding:"min=0"`
}

// Filter returns the month/year filter of the params.
func (p ListTransactionsParams) Filter() domain.TransactionFilter {
	return domain.TransactionFilter{Month: p.Month, Year: p.Year}
}

// Page returns the offset/limit selector of the params.
func (p ListTransactionsParams) Page() domain.PageRequest {
	return domain.PageRequest{Offset: p.Offset, Limit: p.Limit}
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID int64                  `json:"id"`
	AccountID     int64                  `json:"account_id"`
	CategoryID    int64                  `json:"category_id"`
	Amount        string                 `json:"amount"`
	Type          domain.TransactionType `json:"type"`
	Source        domain.SourceType      `json:"source"`
	Description   string                 `json:"description,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	Category      *CategoryResponse      `json:"category,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	res := TransactionResponse{
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		CategoryID:    txn.CategoryID,
		Amount:        utils.FormatWithPrecision(txn.Amount, domain.AmountScale),
		Type:          txn.Type,
		Source:        txn.Source,
		Description:   txn.Description,
		CreatedAt:     txn.CreatedAt,
	}
	if txn.Category != nil {
		category := ToCategoryResponse(*txn.Category)
		res.Category = &category
	}
	return res
}

// ListTransactionsResponse wraps a page of transactions.
// NextOffset is absent when the page was the last one.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextOffset   *int                  `json:"next_offset,omitempty"`
}

// ToListTransactionsResponse converts a page of domain.Transaction
func ToListTransactionsResponse(transactions []domain.Transaction, nextOffset *int) ListTransactionsResponse {
	res := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		res[i] = ToTransactionResponse(&transactions[i])
	}
	return ListTransactionsResponse{Transactions: res, NextOffset: nextOffset}
}
