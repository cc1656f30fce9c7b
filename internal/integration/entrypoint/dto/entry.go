package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// EntryRequest is the body of create, replace and partial update requests
// on /expenses and /incomes. Amount accepts a JSON number or string. A user
// field, if sent, is not bound.
type EntryRequest struct {
	Amount        *decimal.Decimal `json:"amount"`
	Category      *string          `json:"category"`
	ClearCategory bool             `json:"clear_category"`
	Description   *string          `json:"description"`
	Date          *string          `json:"date"`
}

// EntryResponse represents a single expense or income.
type EntryResponse struct {
	ID           string    `json:"id"`
	User         string    `json:"user"`
	Amount       string    `json:"amount"`
	Category     *string   `json:"category"`
	CategoryName string    `json:"category_name"`
	Description  string    `json:"description"`
	Date         time.Time `json:"date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EntryListResponse is one page of entries.
type EntryListResponse struct {
	Count      int64           `json:"count"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
	Results    []EntryResponse `json:"results"`
}

// ToEntryResponse renders an entry in loc. A category reference that no
// longer resolves is reported as absent.
func ToEntryResponse(e *entity.LedgerEntryWithCategory, loc *time.Location) EntryResponse {
	resp := EntryResponse{
		ID:           e.Entry.ID.String(),
		User:         e.Entry.UserID.String(),
		Amount:       valueobject.FormatAmount(e.Entry.Amount),
		CategoryName: e.CategoryName(),
		Description:  e.Entry.Description,
		Date:         e.Entry.OccurredAt.In(loc),
		CreatedAt:    e.Entry.CreatedAt.In(loc),
		UpdatedAt:    e.Entry.UpdatedAt.In(loc),
	}
	if e.Category != nil {
		id := e.Category.ID.String()
		resp.Category = &id
	}
	return resp
}

// ToEntryListResponse builds a page response; Results is never null.
func ToEntryListResponse(entries []*entity.LedgerEntryWithCategory, total int64, page, pageSize, totalPages int, loc *time.Location) EntryListResponse {
	results := make([]EntryResponse, len(entries))
	for i, e := range entries {
		results[i] = ToEntryResponse(e, loc)
	}
	return EntryListResponse{
		Count:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Results:    results,
	}
}
