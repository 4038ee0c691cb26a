package leavebank

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	banks := r.Group("/leave-banks")
	banks.Use(middleware.AuthMiddleware())
	{
		banks.PUT("", middleware.RateLimitByUser(1, 5), handler.Upsert)
		banks.PUT("/bulk", middleware.RateLimitByUser(1, 5), handler.BulkUpsert)
		banks.GET("/employees/:employee_id", middleware.RateLimitByUser(2, 10), handler.ListByEmployee)
	}
}
