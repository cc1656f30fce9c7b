package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/summary"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// SummaryController handles the windowed summary endpoints.
type SummaryController struct {
	summaryUseCase         *summary.GetSummaryUseCase
	categorySummaryUseCase *summary.GetCategorySummaryUseCase
}

// NewSummaryController creates a new summary controller instance.
func NewSummaryController(
	summaryUseCase *summary.GetSummaryUseCase,
	categorySummaryUseCase *summary.GetCategorySummaryUseCase,
) *SummaryController {
	return &SummaryController{
		summaryUseCase:         summaryUseCase,
		categorySummaryUseCase: categorySummaryUseCase,
	}
}

// Summary handles GET /summary requests.
func (c *SummaryController) Summary(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), summary.GetSummaryInput{UserID: userID})
	if err != nil {
		c.handleSummaryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output))
}

// CategorySummary handles GET /summary/categories requests.
func (c *SummaryController) CategorySummary(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.categorySummaryUseCase.Execute(ctx.Request.Context(), summary.GetCategorySummaryInput{UserID: userID})
	if err != nil {
		c.handleSummaryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategorySummaryResponse(output))
}

func (c *SummaryController) handleSummaryError(ctx *gin.Context, err error) {
	var sumErr *domainerror.SummaryError
	if !errors.As(err, &sumErr) {
		respondUnexpectedError(ctx, err, "An internal error occurred")
		return
	}

	slog.ErrorContext(ctx.Request.Context(), sumErr.Message, "error", sumErr.Err)
	resp := dto.ErrorResponse{
		Error: sumErr.Message,
		Code:  string(sumErr.Code),
	}
	if middleware.ShouldExposeErrorDetails(ctx) && sumErr.Err != nil {
		resp.Details = sumErr.Err.Error()
	}
	ctx.JSON(http.StatusInternalServerError, resp)
}
