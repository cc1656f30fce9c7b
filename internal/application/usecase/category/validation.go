// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

const (
	// MaxCategoryNameLength is the maximum allowed length for category names.
	MaxCategoryNameLength = 100

	// NotFoundMessage is the message of every category 404, whatever the cause.
	NotFoundMessage = "category not found"
)

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameRequired,
			"category name is required",
			domainerror.ErrCategoryNameRequired,
		)
	}
	if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}
	return name, nil
}

func parseKind(kind string) (entity.CategoryKind, error) {
	k := entity.CategoryKind(strings.ToLower(strings.TrimSpace(kind)))
	if !k.IsValid() {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryKind,
			"category type must be 'expense' or 'income'",
			domainerror.ErrInvalidCategoryKind,
		)
	}
	return k, nil
}

func ensureUniqueName(ctx context.Context, repo adapter.CategoryRepository, userID uuid.UUID, name string, kind entity.CategoryKind, excludeID *uuid.UUID) error {
	exists, err := repo.ExistsByName(ctx, userID, name, kind, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check category name existence: %w", err)
	}
	if exists {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameExists,
			"a category with this name and type already exists",
			domainerror.ErrCategoryNameExists,
		)
	}
	return nil
}

func notFound(err error) error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryNotFound,
		NotFoundMessage,
		err,
	)
}
