package handlers

import (
	"net/http"
	"strconv"

	"github.com/SscSPs/budget_tracker_app/internal/dto"
	"github.com/SscSPs/budget_tracker_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// pathID parses a positive int64 path parameter, writing a 400 when it is malformed.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + name})
		return 0, false
	}
	return id, true
}

// currentUserID returns the authenticated user ID, writing a 401 when AuthMiddleware did not run.
func currentUserID(c *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return 0, false
	}
	return userID, true
}
