package payroll

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.POST("/generate",
			middleware.RateLimitByUser(0.2, 1),
			middleware.Idempotency(rdb),
			handler.Generate,
		)
		payrolls.POST("/employees/:employee_id/components",
			middleware.RateLimitByUser(0.5, 2),
			handler.AssignComponents,
		)
		payrolls.GET("", middleware.RateLimitByUser(2, 10), handler.List)
		payrolls.GET("/employees/:employee_id/payslip", middleware.RateLimitByUser(1, 5), handler.Payslip)
		payrolls.GET("/export", middleware.RateLimitByUser(0.5, 2), handler.Export)
	}
}
