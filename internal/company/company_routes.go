package company

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	// Company signup happens before any credentials exist.
	r.POST("/companies", middleware.RateLimitByIP(0.5, 2), handler.Create)

	company := r.Group("/companies")
	company.Use(middleware.AuthMiddleware())
	{
		company.GET("/me", middleware.RateLimitByUser(2, 10), handler.GetMe)
		company.PUT("/me", middleware.RateLimitByUser(0.1, 1), handler.UpdateMe)

		company.POST("/me/leave-types", middleware.RateLimitByUser(0.5, 2), handler.CreateLeaveType)
		company.GET("/me/leave-types", middleware.RateLimitByUser(2, 10), handler.ListLeaveTypes)

		company.POST("/me/holidays", middleware.RateLimitByUser(0.5, 2), handler.CreateHoliday)
		company.GET("/me/holidays", middleware.RateLimitByUser(2, 10), handler.ListHolidays)

		company.POST("/me/salary-components", middleware.RateLimitByUser(0.5, 2), handler.CreateSalaryComponent)
		company.POST("/me/salary-components/seed", middleware.RateLimitByUser(0.5, 2), handler.SeedSalaryComponents)
		company.GET("/me/salary-components", middleware.RateLimitByUser(2, 10), handler.ListSalaryComponents)

		company.PUT("/me/effective-days", middleware.RateLimitByUser(0.5, 2), handler.UpsertEffectiveDays)
		company.GET("/me/effective-days", middleware.RateLimitByUser(2, 10), handler.GetEffectiveDays)
	}
}
