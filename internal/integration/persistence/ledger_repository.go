package persistence

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// ledgerRepository implements adapter.LedgerRepository for one entry kind.
// Expenses and incomes share the implementation and differ only in table.
type ledgerRepository struct {
	db    *gorm.DB
	kind  entity.EntryKind
	table string
}

// NewExpenseRepository creates a repository over the expenses table.
func NewExpenseRepository(db *gorm.DB) adapter.LedgerRepository {
	return newLedgerRepository(db, entity.EntryKindExpense)
}

// NewIncomeRepository creates a repository over the incomes table.
func NewIncomeRepository(db *gorm.DB) adapter.LedgerRepository {
	return newLedgerRepository(db, entity.EntryKindIncome)
}

func newLedgerRepository(db *gorm.DB, kind entity.EntryKind) *ledgerRepository {
	return &ledgerRepository{
		db:    db,
		kind:  kind,
		table: model.LedgerTable(kind),
	}
}

// Kind returns the entry kind this repository stores.
func (r *ledgerRepository) Kind() entity.EntryKind {
	return r.kind
}

// Create creates a new entry in the database.
func (r *ledgerRepository) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(model.NewLedgerModel(r.kind, model.LedgerColumnsFromEntity(entry))).Error
}

// FindByID retrieves one of the user's entries together with its category.
func (r *ledgerRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.LedgerEntryWithCategory, error) {
	var cols model.LedgerEntryColumns
	result := r.db.WithContext(ctx).
		Table(r.table).
		Scopes(OwnedBy(userID)).
		Where("id = ?", id).
		Take(&cols)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrEntryNotFound
		}
		return nil, result.Error
	}

	entries, err := r.withCategories(ctx, userID, []model.LedgerEntryColumns{cols})
	if err != nil {
		return nil, err
	}
	return entries[0], nil
}

// FindByFilter retrieves a page of the user's entries, newest first.
func (r *ledgerRepository) FindByFilter(
	ctx context.Context,
	userID uuid.UUID,
	filter adapter.EntryFilter,
	pagination adapter.EntryPagination,
) (*adapter.EntryPage, error) {
	query := r.db.WithContext(ctx).
		Table(r.table).
		Scopes(OwnedBy(userID), occurredWithin("occurred_at", filter.Range))
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	page, pageSize := pagination.Page, pagination.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}

	var rows []model.LedgerEntryColumns
	if offset, ok := pageOffset(page, pageSize); ok && int64(offset) < total {
		err := query.
			Order("occurred_at DESC, created_at DESC").
			Limit(pageSize).
			Offset(offset).
			Find(&rows).Error
		if err != nil {
			return nil, err
		}
	}

	entries, err := r.withCategories(ctx, userID, rows)
	if err != nil {
		return nil, err
	}

	return &adapter.EntryPage{
		Entries:    entries,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}, nil
}

// pageOffset returns the number of rows before page, or false when it does
// not fit in an int.
func pageOffset(page, pageSize int) (int, bool) {
	if page-1 > math.MaxInt/pageSize {
		return 0, false
	}
	return (page - 1) * pageSize, true
}

// Update overwrites the mutable fields of an entry the user owns.
func (r *ledgerRepository) Update(ctx context.Context, entry *entity.LedgerEntry) error {
	cols := model.LedgerColumnsFromEntity(entry)
	result := r.db.WithContext(ctx).
		Model(model.NewLedgerModel(r.kind, model.LedgerEntryColumns{})).
		Scopes(OwnedBy(entry.UserID)).
		Where("id = ?", entry.ID).
		Updates(map[string]any{
			"amount_cents": cols.AmountCents,
			"category_id":  cols.CategoryID,
			"description":  cols.Description,
			"occurred_at":  cols.OccurredAt,
			"updated_at":   cols.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrEntryNotFound
	}
	return nil
}

// Delete removes one of the user's entries.
func (r *ledgerRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Scopes(OwnedBy(userID)).
		Where("id = ?", id).
		Delete(model.NewLedgerModel(r.kind, model.LedgerEntryColumns{}))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrEntryNotFound
	}
	return nil
}

// withCategories resolves the category of every row through the owner scope.
// A reference to a soft-deleted or foreign category resolves to nil.
func (r *ledgerRepository) withCategories(ctx context.Context, userID uuid.UUID, rows []model.LedgerEntryColumns) ([]*entity.LedgerEntryWithCategory, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	seen := make(map[uuid.UUID]struct{}, len(rows))
	for _, row := range rows {
		if row.CategoryID == nil {
			continue
		}
		if _, ok := seen[*row.CategoryID]; ok {
			continue
		}
		seen[*row.CategoryID] = struct{}{}
		ids = append(ids, *row.CategoryID)
	}

	categories := make(map[uuid.UUID]*entity.Category, len(ids))
	if len(ids) > 0 {
		var categoryModels []model.CategoryModel
		err := r.db.WithContext(ctx).
			Scopes(OwnedBy(userID)).
			Where("id IN ?", ids).
			Find(&categoryModels).Error
		if err != nil {
			return nil, err
		}
		for i := range categoryModels {
			categories[categoryModels[i].ID] = categoryModels[i].ToEntity()
		}
	}

	entries := make([]*entity.LedgerEntryWithCategory, len(rows))
	for i := range rows {
		item := &entity.LedgerEntryWithCategory{Entry: rows[i].ToEntity(r.kind)}
		if rows[i].CategoryID != nil {
			item.Category = categories[*rows[i].CategoryID]
		}
		entries[i] = item
	}
	return entries, nil
}
