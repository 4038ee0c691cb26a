package employee

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		employees.GET("", middleware.RateLimitByUser(2, 10), handler.GetAll)
		employees.GET("/options", middleware.RateLimitByUser(5, 20), handler.GetOptions)
		employees.GET("/:id", middleware.RateLimitByUser(2, 10), handler.GetByID)
		employees.PUT("/:id", middleware.RateLimitByUser(1, 5), handler.Update)
		employees.DELETE("/:id", middleware.RateLimitByUser(0.2, 1), handler.Delete)
	}
}
