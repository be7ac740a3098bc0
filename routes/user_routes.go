package routes

import (
	"gotours/internal/handlers"
	"gotours/internal/middleware"
	"gotours/internal/models"
	"gotours/internal/repositories/interfaces"

	"github.com/gin-gonic/gin"
)

// SetupUserRoutes sets up the authentication endpoints, the self-service
// account endpoints and the admin-only user administration.
func SetupUserRoutes(r *gin.RouterGroup, userHandler *handlers.UserHandler, authHandler *handlers.AuthHandler, userRepo interfaces.UserRepository, jwtSecret string) {
	users := r.Group("/users")
	{
		// Public authentication routes (no auth required)
		users.POST("/signup", authHandler.Signup)
		users.POST("/login", authHandler.Login)
		users.POST("/forgotPassword", authHandler.ForgotPassword)
		users.PATCH("/resetPassword/:token", authHandler.ResetPassword)

		// Self-service routes for the logged-in user
		me := users.Group("")
		me.Use(middleware.Protect(userRepo, jwtSecret))
		{
			me.GET("/me", userHandler.GetMe)
			me.PATCH("/updateMe", userHandler.UpdateMe)
			me.DELETE("/deleteMe", userHandler.DeleteMe)
			me.PATCH("/updateMyPassword", authHandler.UpdateMyPassword)
		}

		// Admin routes for user administration
		admin := users.Group("")
		admin.Use(middleware.Protect(userRepo, jwtSecret), middleware.RestrictTo(models.RoleAdmin))
		{
			admin.GET("", userHandler.GetAll)
			admin.POST("", userHandler.CreateUser)
			admin.GET("/:id", userHandler.GetOne)
			admin.PATCH("/:id", userHandler.UpdateOne)
			admin.DELETE("/:id", userHandler.DeleteOne)
		}
	}
}
