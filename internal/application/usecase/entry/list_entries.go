package entry

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// ListEntriesInput carries the raw list filters. Empty strings mean "no filter".
// DateMin and DateMax are inclusive calendar dates in the viewer's timezone.
type ListEntriesInput struct {
	UserID   uuid.UUID
	Category string
	DateMin  string
	DateMax  string
	Page     int
	PageSize int
}

// ListEntriesOutput represents one page of entries.
type ListEntriesOutput struct {
	Entries    []*entity.LedgerEntryWithCategory
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// ListEntriesUseCase lists the caller's entries newest first.
type ListEntriesUseCase struct {
	ledgerRepo adapter.LedgerRepository
	clock      adapter.Clock
	pagination PaginationConfig
}

// NewListEntriesUseCase creates a new ListEntriesUseCase instance.
func NewListEntriesUseCase(ledgerRepo adapter.LedgerRepository, clock adapter.Clock, pagination PaginationConfig) *ListEntriesUseCase {
	return &ListEntriesUseCase{
		ledgerRepo: ledgerRepo,
		clock:      clock,
		pagination: pagination,
	}
}

// Execute performs the listing.
func (uc *ListEntriesUseCase) Execute(ctx context.Context, input ListEntriesInput) (*ListEntriesOutput, error) {
	var filter adapter.EntryFilter

	if category := strings.TrimSpace(input.Category); category != "" {
		id, err := uuid.Parse(category)
		if err != nil {
			return nil, invalidFilter("category must be a valid id")
		}
		filter.CategoryID = &id
	}

	start, err := uc.parseBound(input.DateMin, "date_min")
	if err != nil {
		return nil, err
	}
	end, err := uc.parseBound(input.DateMax, "date_max")
	if err != nil {
		return nil, err
	}
	filter.Range = valueobject.NewDateRange(start, end)

	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 {
		pageSize = uc.pagination.DefaultPageSize
	}
	if uc.pagination.MaxPageSize > 0 && pageSize > uc.pagination.MaxPageSize {
		pageSize = uc.pagination.MaxPageSize
	}
	if pageSize > 0 && page-1 > math.MaxInt/pageSize {
		return nil, invalidFilter("page is out of range")
	}

	result, err := uc.ledgerRepo.FindByFilter(ctx, input.UserID, filter, adapter.EntryPagination{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s entries: %w", uc.ledgerRepo.Kind(), err)
	}

	return &ListEntriesOutput{
		Entries:    result.Entries,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}, nil
}

func (uc *ListEntriesUseCase) parseBound(value, field string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	d, err := valueobject.ParseDate(value, uc.clock.Location())
	if err != nil {
		return nil, invalidFilter(field + " must be a date in YYYY-MM-DD format")
	}
	return &d, nil
}

func invalidFilter(message string) error {
	return domainerror.NewEntryError(domainerror.ErrCodeInvalidFilter, message, domainerror.ErrInvalidFilter)
}
