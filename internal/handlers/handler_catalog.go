package handlers

import (
	"net/http"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	portssvc "github.com/SscSPs/budget_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type catalogHandler struct {
	currencyService portssvc.CurrencySvcFacade
	categoryService portssvc.CategorySvcFacade
}

// registerCatalogRoutes registers the currency and category routes.
func registerCatalogRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade, categoryService portssvc.CategorySvcFacade) {
	h := &catalogHandler{currencyService: currencyService, categoryService: categoryService}

	rg.GET("/currencies", h.listCurrencies)
	categories := rg.Group("/categories")
	{
		categories.GET("", h.listCategories)
		categories.POST("", h.createCategory)
	}
}

// listCurrencies godoc
// @Summary List currencies
// @Tags catalog
// @Produce json
// @Success 200 {array} dto.CurrencyResponse
// @Security BearerAuth
// @Router /currencies [get]
func (h *catalogHandler) listCurrencies(c *gin.Context) {
	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to list currencies")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}

// listCategories godoc
// @Summary List categories
// @Description Shared categories plus the user's own, ordered by name
// @Tags catalog
// @Produce json
// @Param type query string false "income or expense"
// @Success 200 {array} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /categories [get]
func (h *catalogHandler) listCategories(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListCategoriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	var categoryType *domain.CategoryType
	if params.Type != "" {
		t := domain.CategoryType(params.Type)
		categoryType = &t
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), userID, categoryType)
	if err != nil {
		respondWithError(c, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCategoryResponse(categories))
}

// createCategory godoc
// @Summary Create a category
// @Tags catalog
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /categories [post]
func (h *catalogHandler) createCategory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	category, err := h.categoryService.CreateCategory(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(*category))
}
