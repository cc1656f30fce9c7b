package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/usecase/category"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestRespondUnexpectedError_Details(t *testing.T) {
	tests := []struct {
		name        string
		expose      bool
		wantDetails string
	}{
		{"development", true, "connection reset"},
		{"production", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.Use(middleware.ErrorDetails(tt.expose))
			engine.GET("/boom", func(c *gin.Context) {
				respondUnexpectedError(c, errors.New("connection reset"), "An internal error occurred")
			})

			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("expected 500, got %d", rec.Code)
			}
			if body := decodeError(t, rec); body.Details != tt.wantDetails {
				t.Errorf("expected details %q, got %q", tt.wantDetails, body.Details)
			}
		})
	}
}

func TestEntryController_NotFoundIsUniform(t *testing.T) {
	c := &EntryController{kind: "expense"}
	engine := gin.New()
	engine.GET("/expenses/:id", func(ctx *gin.Context) {
		ctx.Set(string(middleware.UserIDKey), uuid.New())
		if _, ok := parseIDParam(ctx, c.notFoundResponse()); !ok {
			return
		}
		c.handleEntryError(ctx, domainerror.NewEntryError(
			domainerror.ErrCodeEntryNotFound, "expense not found", domainerror.ErrEntryNotFound,
		))
	})

	var bodies []string
	for _, id := range []string{"not-a-uuid", uuid.NewString()} {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/expenses/"+id, nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", id, rec.Code)
		}
		bodies = append(bodies, rec.Body.String())
	}
	if bodies[0] != bodies[1] {
		t.Errorf("expected identical bodies, got %s and %s", bodies[0], bodies[1])
	}
}

func TestCategoryController_NotFoundIsUniform(t *testing.T) {
	c := &CategoryController{}
	engine := gin.New()
	engine.GET("/categories/:id", func(ctx *gin.Context) {
		ctx.Set(string(middleware.UserIDKey), uuid.New())
		if _, ok := parseIDParam(ctx, categoryNotFound); !ok {
			return
		}
		c.handleCategoryError(ctx, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound, category.NotFoundMessage, domainerror.ErrCategoryNotFound,
		))
	})

	var bodies []string
	for _, id := range []string{"not-a-uuid", uuid.NewString()} {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories/"+id, nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", id, rec.Code)
		}
		bodies = append(bodies, rec.Body.String())
	}
	if bodies[0] != bodies[1] {
		t.Errorf("expected identical bodies, got %s and %s", bodies[0], bodies[1])
	}
}

func TestRequireUserID(t *testing.T) {
	engine := gin.New()
	engine.GET("/", func(c *gin.Context) {
		if _, ok := requireUserID(c); ok {
			c.Status(http.StatusOK)
		}
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestParseCategoryRef(t *testing.T) {
	id := uuid.New()
	str := func(s string) *string { return &s }

	tests := []struct {
		name      string
		raw       *string
		wantID    *uuid.UUID
		wantClear bool
		wantErr   bool
	}{
		{"absent", nil, nil, false, false},
		{"empty clears", str(""), nil, true, false},
		{"valid id", str(id.String()), &id, false, false},
		{"garbage", str("food"), nil, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clearRef, err := parseCategoryRef(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if err != nil {
				var entryErr *domainerror.EntryError
				if !errors.As(err, &entryErr) || entryErr.Code != domainerror.ErrCodeEntryCategoryScope {
					t.Errorf("expected category scope error, got %v", err)
				}
				return
			}
			if clearRef != tt.wantClear {
				t.Errorf("clear: expected %v, got %v", tt.wantClear, clearRef)
			}
			if (got == nil) != (tt.wantID == nil) || (got != nil && *got != *tt.wantID) {
				t.Errorf("id: expected %v, got %v", tt.wantID, got)
			}
		})
	}
}

func TestListQueryParsing(t *testing.T) {
	tests := []struct {
		query       string
		wantMin     string
		wantMax     string
		wantPage    int
		wantInvalid bool
	}{
		{"date_min=2024-03-01&date_max=2024-03-31", "2024-03-01", "2024-03-31", 0, false},
		{"date__gte=2024-03-01&date__lte=2024-03-31&page=2", "2024-03-01", "2024-03-31", 2, false},
		{"date_min=2024-03-05&date__gte=2024-03-01", "2024-03-05", "", 0, false},
		{"page=0", "", "", 0, true},
		{"page=two", "", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(rec)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/expenses?"+tt.query, nil)

			if got := firstQuery(ctx, "date_min", "date__gte"); got != tt.wantMin {
				t.Errorf("min: expected %q, got %q", tt.wantMin, got)
			}
			if got := firstQuery(ctx, "date_max", "date__lte"); got != tt.wantMax {
				t.Errorf("max: expected %q, got %q", tt.wantMax, got)
			}
			page, err := queryInt(ctx, "page")
			if (err != nil) != tt.wantInvalid {
				t.Fatalf("unexpected error state: %v", err)
			}
			if page != tt.wantPage {
				t.Errorf("page: expected %d, got %d", tt.wantPage, page)
			}
		})
	}
}

func TestStatusMappings(t *testing.T) {
	tests := []struct {
		name string
		got  int
		want int
	}{
		{"duplicate username", statusForAuthError(domainerror.ErrCodeUsernameExists), http.StatusBadRequest},
		{"duplicate email", statusForAuthError(domainerror.ErrCodeEmailExists), http.StatusBadRequest},
		{"bad credentials", statusForAuthError(domainerror.ErrCodeInvalidCredentials), http.StatusUnauthorized},
		{"rate limited", statusForAuthError(domainerror.ErrCodeRateLimited), http.StatusTooManyRequests},
		{"duplicate category", statusForCategoryError(domainerror.ErrCodeCategoryNameExists), http.StatusBadRequest},
		{"category missing", statusForCategoryError(domainerror.ErrCodeCategoryNotFound), http.StatusNotFound},
		{"foreign category on entry", statusForEntryError(domainerror.ErrCodeEntryCategoryScope), http.StatusBadRequest},
		{"entry missing", statusForEntryError(domainerror.ErrCodeEntryNotFound), http.StatusNotFound},
		{"amount too large", statusForEntryError(domainerror.ErrCodeAmountTooLarge), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, tt.got)
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name      string
		db        func() bool
		cache     func() bool
		wantDB    string
		wantCache string
	}{
		{"all up", func() bool { return true }, func() bool { return true }, "connected", "connected"},
		{"cache disabled", func() bool { return true }, nil, "connected", "disabled"},
		{"db down", func() bool { return false }, func() bool { return false }, "disconnected", "disconnected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.GET("/health", NewHealthController(tt.db, tt.cache).Check)

			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			var body HealthResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode: %v", err)
			}
			if body.Database != tt.wantDB || body.Cache != tt.wantCache {
				t.Errorf("expected %s/%s, got %s/%s", tt.wantDB, tt.wantCache, body.Database, body.Cache)
			}
		})
	}
}
