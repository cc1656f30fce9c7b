// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine             *gin.Engine
	healthController   *controller.HealthController
	authController     *controller.AuthController
	userController     *controller.UserController
	categoryController *controller.CategoryController
	expenseController  *controller.EntryController
	incomeController   *controller.EntryController
	summaryController  *controller.SummaryController
	loginRateLimiter   *middleware.RateLimiter
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	categoryController *controller.CategoryController,
	expenseController *controller.EntryController,
	incomeController *controller.EntryController,
	summaryController *controller.SummaryController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:   healthController,
		authController:     authController,
		userController:     userController,
		categoryController: categoryController,
		expenseController:  expenseController,
		incomeController:   incomeController,
		summaryController:  summaryController,
		loginRateLimiter:   loginRateLimiter,
		authMiddleware:     authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(
		gin.Recovery(),
		middleware.RequestLogger(),
		middleware.ErrorDetails(environment != "production"),
	)

	r.engine.GET("/health", r.healthController.Check)
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/signup", r.authController.Signup)
		auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
		auth.POST("/refresh", r.authController.RefreshToken)
		auth.POST("/logout", r.authController.Logout)
	}

	// everything below acts on the authenticated identity only
	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	users := protected.Group("/users")
	{
		users.GET("/me", r.userController.Me)
		users.PATCH("/me/profile", r.userController.UpdateProfile)
		users.DELETE("/me", r.userController.DeleteAccount)
	}

	categories := protected.Group("/categories")
	{
		categories.GET("", r.categoryController.List)
		categories.POST("", r.categoryController.Create)
		categories.GET("/:id", r.categoryController.Get)
		categories.PUT("/:id", r.categoryController.Update)
		categories.PATCH("/:id", r.categoryController.Update)
		categories.DELETE("/:id", r.categoryController.Delete)
	}

	registerEntryRoutes(protected.Group("/expenses"), r.expenseController)
	registerEntryRoutes(protected.Group("/incomes"), r.incomeController)

	summary := protected.Group("/summary")
	{
		summary.GET("", r.summaryController.Summary)
		summary.GET("/categories", r.summaryController.CategorySummary)
	}
}

func registerEntryRoutes(group *gin.RouterGroup, c *controller.EntryController) {
	group.GET("", c.List)
	group.POST("", c.Create)
	group.GET("/:id", c.Get)
	group.PUT("/:id", c.Update)
	group.PATCH("/:id", c.Update)
	group.DELETE("/:id", c.Delete)
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
