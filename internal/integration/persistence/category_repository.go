package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Create(model.CategoryFromEntity(category)).Error
}

// FindByID retrieves one of the user's categories.
func (r *categoryRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).
		Scopes(OwnedBy(userID)).
		Where("id = ?", id).
		First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindByOwner retrieves the user's categories ordered by name.
func (r *categoryRepository) FindByOwner(ctx context.Context, userID uuid.UUID, kind *entity.CategoryKind) ([]*entity.Category, error) {
	query := r.db.WithContext(ctx).Scopes(OwnedBy(userID))
	if kind != nil {
		query = query.Where("kind = ?", string(*kind))
	}

	var categoryModels []model.CategoryModel
	if err := query.Order("name ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
	}
	return categories, nil
}

// ExistsByName checks whether the user already has a category with this name and kind.
func (r *categoryRepository) ExistsByName(ctx context.Context, userID uuid.UUID, name string, kind entity.CategoryKind, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Scopes(OwnedBy(userID)).
		Where("name = ? AND kind = ?", name, string(kind))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update updates an existing category in the database.
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	result := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Scopes(OwnedBy(category.UserID)).
		Where("id = ?", category.ID).
		Updates(map[string]any{
			"name":       category.Name,
			"kind":       string(category.Kind),
			"updated_at": category.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCategoryNotFound
	}
	return nil
}

// Delete detaches the category from the owner's expenses and incomes and
// soft-deletes it, all in one transaction.
func (r *categoryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var categoryModel model.CategoryModel
		if err := tx.Scopes(OwnedBy(userID)).Where("id = ?", id).First(&categoryModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerror.ErrCategoryNotFound
			}
			return err
		}

		for _, kind := range []entity.EntryKind{entity.EntryKindExpense, entity.EntryKindIncome} {
			err := tx.Model(model.NewLedgerModel(kind, model.LedgerEntryColumns{})).
				Scopes(OwnedBy(userID)).
				Where("category_id = ?", id).
				Update("category_id", nil).Error
			if err != nil {
				return err
			}
		}

		return tx.Delete(&categoryModel).Error
	})
}
