package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
	"github.com/SscSPs/budget_tracker_app/internal/dto"
	"github.com/SscSPs/budget_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondWithError maps service errors onto HTTP statuses. Unexpected errors are logged
// and reported with fallbackMsg so internals never leak to the client.
func respondWithError(c *gin.Context, err error, fallbackMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrInvalidReference), errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Could not validate credentials"})
	case errors.Is(err, apperrors.ErrInternalInconsistency):
		logger.Error("Internal inconsistency", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallbackMsg})
	case errors.As(err, &appErr):
		logger.Error(appErr.Message, slog.String("error", err.Error()))
		c.JSON(appErr.Code, dto.ErrorResponse{Error: appErr.Message})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: fallbackMsg})
	}
}

// respondBindError reports a request that failed binding or validation.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request: " + err.Error()})
}
