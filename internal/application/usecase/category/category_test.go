package category

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type fakeCategoryRepository struct {
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepository() *fakeCategoryRepository {
	return &fakeCategoryRepository{categories: map[uuid.UUID]*entity.Category{}}
}

func (f *fakeCategoryRepository) Create(_ context.Context, c *entity.Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepository) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.Category, error) {
	c, ok := f.categories[id]
	if !ok || c.UserID != userID {
		return nil, domainerror.ErrCategoryNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCategoryRepository) FindByOwner(_ context.Context, userID uuid.UUID, kind *entity.CategoryKind) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range f.categories {
		if c.UserID == userID && (kind == nil || c.Kind == *kind) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategoryRepository) ExistsByName(_ context.Context, userID uuid.UUID, name string, kind entity.CategoryKind, excludeID *uuid.UUID) (bool, error) {
	for _, c := range f.categories {
		if excludeID != nil && c.ID == *excludeID {
			continue
		}
		if c.UserID == userID && c.Name == name && c.Kind == kind {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCategoryRepository) Update(_ context.Context, c *entity.Category) error {
	if existing, ok := f.categories[c.ID]; !ok || existing.UserID != c.UserID {
		return domainerror.ErrCategoryNotFound
	}
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepository) Delete(_ context.Context, userID, id uuid.UUID) error {
	c, ok := f.categories[id]
	if !ok || c.UserID != userID {
		return domainerror.ErrCategoryNotFound
	}
	delete(f.categories, id)
	return nil
}

func categoryCode(t *testing.T, err error) domainerror.CategoryErrorCode {
	t.Helper()
	var catErr *domainerror.CategoryError
	if !errors.As(err, &catErr) {
		t.Fatalf("expected CategoryError, got %v", err)
	}
	return catErr.Code
}

func strPtr(s string) *string { return &s }

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCategoryRepository()
	uc := NewCreateCategoryUseCase(repo)
	alice, bob := uuid.New(), uuid.New()

	out, err := uc.Execute(ctx, CreateCategoryInput{UserID: alice, Name: "  Food ", Kind: "Expense"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Category.Name != "Food" || out.Category.Kind != entity.CategoryKindExpense {
		t.Errorf("unexpected category: %+v", out.Category)
	}

	if _, err := uc.Execute(ctx, CreateCategoryInput{UserID: alice, Name: "Food", Kind: "income"}); err != nil {
		t.Errorf("same name with another kind must be allowed: %v", err)
	}
	if _, err := uc.Execute(ctx, CreateCategoryInput{UserID: bob, Name: "Food", Kind: "expense"}); err != nil {
		t.Errorf("same name for another owner must be allowed: %v", err)
	}

	tests := []struct {
		name  string
		input CreateCategoryInput
		code  domainerror.CategoryErrorCode
	}{
		{"empty name", CreateCategoryInput{UserID: alice, Name: "  ", Kind: "expense"}, domainerror.ErrCodeCategoryNameRequired},
		{"long name", CreateCategoryInput{UserID: alice, Name: strings.Repeat("é", 101), Kind: "expense"}, domainerror.ErrCodeCategoryNameTooLong},
		{"bad kind", CreateCategoryInput{UserID: alice, Name: "Misc", Kind: "transfer"}, domainerror.ErrCodeInvalidCategoryKind},
		{"duplicate", CreateCategoryInput{UserID: alice, Name: "Food", Kind: "expense"}, domainerror.ErrCodeCategoryNameExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.input)
			if got := categoryCode(t, err); got != tt.code {
				t.Errorf("expected %s, got %s", tt.code, got)
			}
		})
	}

	if _, err := uc.Execute(ctx, CreateCategoryInput{UserID: alice, Name: strings.Repeat("é", 100), Kind: "expense"}); err != nil {
		t.Errorf("100 characters must be accepted: %v", err)
	}
}

func TestListCategories(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCategoryRepository()
	create := NewCreateCategoryUseCase(repo)
	alice := uuid.New()
	for _, in := range []CreateCategoryInput{
		{UserID: alice, Name: "Salary", Kind: "income"},
		{UserID: alice, Name: "Food", Kind: "expense"},
		{UserID: uuid.New(), Name: "Other", Kind: "expense"},
	} {
		if _, err := create.Execute(ctx, in); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
	}

	uc := NewListCategoriesUseCase(repo)
	all, err := uc.Execute(ctx, ListCategoriesInput{UserID: alice})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all.Categories) != 2 {
		t.Errorf("expected 2 categories, got %d", len(all.Categories))
	}

	incomes, err := uc.Execute(ctx, ListCategoriesInput{UserID: alice, Kind: "income"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(incomes.Categories) != 1 || incomes.Categories[0].Name != "Salary" {
		t.Errorf("expected only Salary, got %+v", incomes.Categories)
	}

	_, err = uc.Execute(ctx, ListCategoriesInput{UserID: alice, Kind: "bogus"})
	if got := categoryCode(t, err); got != domainerror.ErrCodeInvalidCategoryKind {
		t.Errorf("expected invalid kind, got %s", got)
	}
}

func TestGetUpdateDeleteAreScoped(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCategoryRepository()
	alice, bob := uuid.New(), uuid.New()
	food, _ := NewCreateCategoryUseCase(repo).Execute(ctx, CreateCategoryInput{UserID: alice, Name: "Food", Kind: "expense"})
	_, _ = NewCreateCategoryUseCase(repo).Execute(ctx, CreateCategoryInput{UserID: alice, Name: "Rent", Kind: "expense"})
	id := food.Category.ID

	_, err := NewGetCategoryUseCase(repo).Execute(ctx, GetCategoryInput{UserID: bob, CategoryID: id})
	if got := categoryCode(t, err); got != domainerror.ErrCodeCategoryNotFound {
		t.Errorf("get: expected not found, got %s", got)
	}
	_, err = NewUpdateCategoryUseCase(repo).Execute(ctx, UpdateCategoryInput{UserID: bob, CategoryID: id, Name: strPtr("Mine")})
	if got := categoryCode(t, err); got != domainerror.ErrCodeCategoryNotFound {
		t.Errorf("update: expected not found, got %s", got)
	}
	err = NewDeleteCategoryUseCase(repo).Execute(ctx, DeleteCategoryInput{UserID: bob, CategoryID: id})
	if got := categoryCode(t, err); got != domainerror.ErrCodeCategoryNotFound {
		t.Errorf("delete: expected not found, got %s", got)
	}

	update := NewUpdateCategoryUseCase(repo)
	_, err = update.Execute(ctx, UpdateCategoryInput{UserID: alice, CategoryID: id, Name: strPtr("Rent")})
	if got := categoryCode(t, err); got != domainerror.ErrCodeCategoryNameExists {
		t.Errorf("rename onto existing: expected name exists, got %s", got)
	}

	out, err := update.Execute(ctx, UpdateCategoryInput{UserID: alice, CategoryID: id, Kind: strPtr("income")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Category.Name != "Food" || out.Category.Kind != entity.CategoryKindIncome {
		t.Errorf("partial update changed the wrong fields: %+v", out.Category)
	}

	if err := NewDeleteCategoryUseCase(repo).Execute(ctx, DeleteCategoryInput{UserID: alice, CategoryID: id}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = NewGetCategoryUseCase(repo).Execute(ctx, GetCategoryInput{UserID: alice, CategoryID: id})
	if got := categoryCode(t, err); got != domainerror.ErrCodeCategoryNotFound {
		t.Errorf("expected deleted category to be gone, got %s", got)
	}
}
