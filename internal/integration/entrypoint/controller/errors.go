// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// respondUnexpectedError logs err and answers 500. The internal text is only
// returned when the ErrorDetails middleware allows it.
func respondUnexpectedError(ctx *gin.Context, err error, message string) {
	slog.ErrorContext(ctx.Request.Context(), message,
		"error", err,
		"method", ctx.Request.Method,
		"path", ctx.FullPath(),
	)

	resp := dto.ErrorResponse{Error: message}
	if middleware.ShouldExposeErrorDetails(ctx) {
		resp.Details = err.Error()
	}
	ctx.JSON(http.StatusInternalServerError, resp)
}

// requireUserID returns the authenticated identity or answers 401.
func requireUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// parseIDParam reads the :id path parameter. A malformed id cannot name any
// row, so it gets the same answer as an absent one.
func parseIDParam(ctx *gin.Context, notFound dto.ErrorResponse) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, notFound)
		return uuid.Nil, false
	}
	return id, true
}
