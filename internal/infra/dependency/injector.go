// Package dependency provides dependency injection for the application.
package dependency

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/auth"
	"github.com/expense-tracker/backend/internal/application/usecase/category"
	"github.com/expense-tracker/backend/internal/application/usecase/entry"
	"github.com/expense-tracker/backend/internal/application/usecase/summary"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/infra/cache"
	"github.com/expense-tracker/backend/internal/infra/server/router"
	"github.com/expense-tracker/backend/internal/integration/adapters"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/expense-tracker/backend/internal/integration/persistence"
)

const rateLimitKeyPrefix = "ratelimit:"

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case rate limits are kept in memory.
// clock defines "now" and the calendar used for date filters and summaries.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient redis.UniversalClient, clock adapter.Clock) *Injector {
	// Repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	incomeRepo := persistence.NewIncomeRepository(db)

	// Services
	passwordService := adapters.NewPasswordService(cfg.Security.BcryptCost)
	tokenService := adapters.NewTokenService(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
		tokenRepo,
	)

	// Auth and account use cases
	authController := controller.NewAuthController(
		auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService),
		auth.NewLoginUserUseCase(userRepo, passwordService, tokenService),
		auth.NewRefreshTokenUseCase(tokenService),
		auth.NewLogoutUserUseCase(tokenService),
	)
	userController := controller.NewUserController(
		auth.NewGetCurrentUserUseCase(userRepo),
		auth.NewUpdateProfileUseCase(userRepo),
		auth.NewDeleteAccountUseCase(userRepo, passwordService, tokenService),
	)

	categoryController := controller.NewCategoryController(
		category.NewListCategoriesUseCase(categoryRepo),
		category.NewCreateCategoryUseCase(categoryRepo),
		category.NewGetCategoryUseCase(categoryRepo),
		category.NewUpdateCategoryUseCase(categoryRepo),
		category.NewDeleteCategoryUseCase(categoryRepo),
	)

	pagination := entry.PaginationConfig{
		DefaultPageSize: cfg.Ledger.DefaultPageSize,
		MaxPageSize:     cfg.Ledger.MaxPageSize,
	}
	expenseController := newEntryController(entity.EntryKindExpense, expenseRepo, categoryRepo, clock, pagination)
	incomeController := newEntryController(entity.EntryKindIncome, incomeRepo, categoryRepo, clock, pagination)

	summaryController := controller.NewSummaryController(
		summary.NewGetSummaryUseCase(expenseRepo, incomeRepo, clock),
		summary.NewGetCategorySummaryUseCase(expenseRepo, incomeRepo, clock),
	)

	var cacheHealth func() bool
	var rateLimitStore middleware.RateLimitStore = middleware.NewMemoryStore()
	if redisClient != nil {
		rateLimitStore = middleware.NewRedisStore(redisClient, rateLimitKeyPrefix)
		cacheHealth = cache.HealthChecker(redisClient)
	}

	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, cacheHealth)

	loginRateLimiter := middleware.NewRateLimiterWithConfig(
		rateLimitStore,
		"login",
		cfg.RateLimit.LoginAttempts,
		cfg.RateLimit.LoginWindow,
	)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		userController,
		categoryController,
		expenseController,
		incomeController,
		summaryController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}
}

func newEntryController(
	kind entity.EntryKind,
	ledgerRepo adapter.LedgerRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
	pagination entry.PaginationConfig,
) *controller.EntryController {
	return controller.NewEntryController(
		kind,
		entry.NewListEntriesUseCase(ledgerRepo, clock, pagination),
		entry.NewCreateEntryUseCase(ledgerRepo, categoryRepo, clock),
		entry.NewGetEntryUseCase(ledgerRepo),
		entry.NewUpdateEntryUseCase(ledgerRepo, categoryRepo, clock),
		entry.NewDeleteEntryUseCase(ledgerRepo),
		clock.Location(),
	)
}
