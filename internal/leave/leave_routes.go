package leave

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Idempotency(rdb),
			handler.Apply,
		)
		leaves.GET("", middleware.RateLimitByUser(2, 10), handler.GetAll)
		leaves.GET("/:id", middleware.RateLimitByUser(2, 10), handler.GetByID)
		leaves.POST("/:id/transition", middleware.RateLimitByUser(1, 3), handler.Transition)
	}
}
