package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/usecase/entry"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// EntryController handles /expenses or /incomes; one instance serves one kind.
type EntryController struct {
	kind          entity.EntryKind
	listUseCase   *entry.ListEntriesUseCase
	createUseCase *entry.CreateEntryUseCase
	getUseCase    *entry.GetEntryUseCase
	updateUseCase *entry.UpdateEntryUseCase
	deleteUseCase *entry.DeleteEntryUseCase
	location      *time.Location
}

// NewEntryController creates a new entry controller instance. Timestamps are
// rendered in location.
func NewEntryController(
	kind entity.EntryKind,
	listUseCase *entry.ListEntriesUseCase,
	createUseCase *entry.CreateEntryUseCase,
	getUseCase *entry.GetEntryUseCase,
	updateUseCase *entry.UpdateEntryUseCase,
	deleteUseCase *entry.DeleteEntryUseCase,
	location *time.Location,
) *EntryController {
	if location == nil {
		location = time.UTC
	}
	return &EntryController{
		kind:          kind,
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		location:      location,
	}
}

// List handles GET requests on the collection.
func (c *EntryController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	page, err := queryInt(ctx, "page")
	if err != nil {
		c.handleEntryError(ctx, err)
		return
	}
	pageSize, err := queryInt(ctx, "page_size")
	if err != nil {
		c.handleEntryError(ctx, err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), entry.ListEntriesInput{
		UserID:   userID,
		Category: ctx.Query("category"),
		DateMin:  firstQuery(ctx, "date_min", "date__gte"),
		DateMax:  firstQuery(ctx, "date_max", "date__lte"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		c.handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEntryListResponse(
		output.Entries, output.Total, output.Page, output.PageSize, output.TotalPages, c.location,
	))
}

// Create handles POST requests on the collection.
func (c *EntryController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	req, ok := c.bindEntry(ctx)
	if !ok {
		return
	}
	categoryID, _, err := parseCategoryRef(req.Category)
	if err != nil {
		c.handleEntryError(ctx, err)
		return
	}

	input := entry.CreateEntryInput{
		UserID:     userID,
		Amount:     req.Amount,
		CategoryID: categoryID,
	}
	if req.Description != nil {
		input.Description = *req.Description
	}
	if req.Date != nil {
		input.Date = *req.Date
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToEntryResponse(output.Entry, c.location))
}

// Get handles GET requests on a single entry.
func (c *EntryController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	entryID, ok := parseIDParam(ctx, c.notFoundResponse())
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), entry.GetEntryInput{
		UserID:  userID,
		EntryID: entryID,
	})
	if err != nil {
		c.handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEntryResponse(output.Entry, c.location))
}

// Update handles PUT (full replacement) and PATCH (partial) requests.
func (c *EntryController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	entryID, ok := parseIDParam(ctx, c.notFoundResponse())
	if !ok {
		return
	}

	req, ok := c.bindEntry(ctx)
	if !ok {
		return
	}
	categoryID, clearRef, err := parseCategoryRef(req.Category)
	if err != nil {
		c.handleEntryError(ctx, err)
		return
	}

	replace := ctx.Request.Method == http.MethodPut
	input := entry.UpdateEntryInput{
		UserID:        userID,
		EntryID:       entryID,
		Replace:       replace,
		Amount:        req.Amount,
		CategoryID:    categoryID,
		ClearCategory: clearRef || req.ClearCategory,
		Description:   req.Description,
		Date:          req.Date,
	}
	if replace {
		// absent optional fields are reset on a full replacement
		if categoryID == nil {
			input.ClearCategory = true
		}
		if input.Description == nil {
			empty := ""
			input.Description = &empty
		}
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleEntryError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEntryResponse(output.Entry, c.location))
}

// Delete handles DELETE requests on a single entry.
func (c *EntryController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	entryID, ok := parseIDParam(ctx, c.notFoundResponse())
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), entry.DeleteEntryInput{
		UserID:  userID,
		EntryID: entryID,
	}); err != nil {
		c.handleEntryError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *EntryController) bindEntry(ctx *gin.Context) (*dto.EntryRequest, bool) {
	var req dto.EntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingEntryFields),
		})
		return nil, false
	}
	return &req, true
}

func (c *EntryController) notFoundResponse() dto.ErrorResponse {
	return dto.ErrorResponse{
		Error: fmt.Sprintf("%s not found", c.kind),
		Code:  string(domainerror.ErrCodeEntryNotFound),
	}
}

// handleEntryError handles entry errors and returns appropriate HTTP responses.
func (c *EntryController) handleEntryError(ctx *gin.Context, err error) {
	var entryErr *domainerror.EntryError
	if errors.As(err, &entryErr) {
		ctx.JSON(statusForEntryError(entryErr.Code), dto.ErrorResponse{
			Error: entryErr.Message,
			Code:  string(entryErr.Code),
		})
		return
	}

	respondUnexpectedError(ctx, err, "An internal error occurred")
}

// statusForEntryError maps entry error codes to HTTP status codes.
func statusForEntryError(code domainerror.EntryErrorCode) int {
	switch code {
	case domainerror.ErrCodeEntryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidAmount,
		domainerror.ErrCodeAmountTooLarge,
		domainerror.ErrCodeInvalidEntryDate,
		domainerror.ErrCodeEntryCategoryScope,
		domainerror.ErrCodeMissingEntryFields,
		domainerror.ErrCodeInvalidFilter:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseCategoryRef reads the optional category reference of a write. An
// empty string clears it; anything that is not an id cannot be in scope.
func parseCategoryRef(raw *string) (*uuid.UUID, bool, error) {
	if raw == nil {
		return nil, false, nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return nil, true, nil
	}
	parsed, err := uuid.Parse(value)
	if err != nil {
		return nil, false, domainerror.NewEntryError(
			domainerror.ErrCodeEntryCategoryScope,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}
	return &parsed, false, nil
}

func queryInt(ctx *gin.Context, key string) (int, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, domainerror.NewEntryError(
			domainerror.ErrCodeInvalidFilter,
			key+" must be a positive integer",
			domainerror.ErrInvalidFilter,
		)
	}
	return n, nil
}

// firstQuery returns the first non-empty value among the given parameter names.
func firstQuery(ctx *gin.Context, keys ...string) string {
	for _, key := range keys {
		if v := ctx.Query(key); v != "" {
			return v
		}
	}
	return ""
}
