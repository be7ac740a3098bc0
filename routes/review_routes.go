package routes

import (
	"gotours/internal/handlers"
	"gotours/internal/middleware"
	"gotours/internal/models"
	"gotours/internal/repositories/interfaces"

	"github.com/gin-gonic/gin"
)

// SetupReviewRoutes sets up the flat review routes; all of them require a
// logged-in caller.
func SetupReviewRoutes(r *gin.RouterGroup, reviewHandler *handlers.ReviewHandler, userRepo interfaces.UserRepository, jwtSecret string) {
	reviews := r.Group("/reviews")
	reviews.Use(middleware.Protect(userRepo, jwtSecret))
	{
		reviews.GET("", reviewHandler.GetAll)
		reviews.GET("/:id", reviewHandler.GetOne)
		reviews.POST("", middleware.RestrictTo(models.RoleUser, models.RoleAdmin), reviewHandler.CreateOne)
		reviews.PATCH("/:id", middleware.RestrictTo(models.RoleUser, models.RoleAdmin), reviewHandler.UpdateOne)
		reviews.DELETE("/:id", middleware.RestrictTo(models.RoleUser, models.RoleAdmin), reviewHandler.DeleteOne)
	}
}
