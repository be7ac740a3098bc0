package routes

import (
	"gotours/internal/handlers"
	"gotours/internal/middleware"
	"gotours/internal/models"
	"gotours/internal/repositories/interfaces"

	"github.com/gin-gonic/gin"
)

// SetupTourRoutes sets up routes for tour functionality, including the
// review routes nested under a tour.
func SetupTourRoutes(r *gin.RouterGroup, tourHandler *handlers.TourHandler, reviewHandler *handlers.ReviewHandler, userRepo interfaces.UserRepository, jwtSecret string) {
	tours := r.Group("/tours")
	{
		tours.GET("/top-5-cheap", tourHandler.AliasTopTours, tourHandler.GetAll)
		tours.GET("/stats", tourHandler.GetTourStats)

		tours.GET("", tourHandler.GetAll)
		tours.GET("/:id", tourHandler.GetOne)

		// Write operations are staff-only.
		staff := tours.Group("")
		staff.Use(middleware.Protect(userRepo, jwtSecret), middleware.RestrictTo(models.RoleAdmin, models.RoleLeadGuide))
		{
			staff.POST("", tourHandler.CreateOne)
			staff.PATCH("/:id", tourHandler.UpdateOne)
			staff.DELETE("/:id", tourHandler.DeleteOne)
		}

		// Reviews scoped to a single tour.
		tours.GET("/:id/reviews", reviewHandler.GetAll)
		tours.POST("/:id/reviews",
			middleware.Protect(userRepo, jwtSecret),
			middleware.RestrictTo(models.RoleUser, models.RoleAdmin),
			reviewHandler.CreateOne)
	}
}
