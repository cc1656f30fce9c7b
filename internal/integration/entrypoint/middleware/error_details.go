package middleware

import "github.com/gin-gonic/gin"

// ExposeErrorDetailsKey marks requests whose error bodies may carry internal detail.
const ExposeErrorDetailsKey ContextKey = "expose_error_details"

// ErrorDetails records whether unexpected errors may surface their internal text.
// It must be false in production.
func ErrorDetails(expose bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(ExposeErrorDetailsKey), expose)
		c.Next()
	}
}

// ShouldExposeErrorDetails reports the flag set by ErrorDetails; absent means false.
func ShouldExposeErrorDetails(c *gin.Context) bool {
	return c.GetBool(string(ExposeErrorDetailsKey))
}
