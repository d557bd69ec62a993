package routes

import (
	"net/http"
	"time"

	"cupid/config"
	"cupid/handlers"
	"cupid/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers identity endpoints.
func RegisterAuthRoutes(r *gin.Engine) {
	api := r.Group("/api/auth")
	{
		api.POST("/signup", handlers.SignUpHandler)
		api.POST("/signin", handlers.SignInHandler)
		api.POST("/forgot-password", handlers.ForgotPasswordHandler)
		api.POST("/reset-password", handlers.ResetPasswordHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/session", handlers.CurrentSessionHandler)
		api.POST("/signout", handlers.SignOutHandler)
		api.DELETE("/account", handlers.DeleteAccountHandler)
	}
}

// RegisterProfileRoutes registers profile endpoints.
func RegisterProfileRoutes(r *gin.Engine) {
	api := r.Group("/api/profile")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", handlers.GetProfileHandler)
		api.PUT("", handlers.SaveProfileHandler)
		api.PATCH("", handlers.UpdateProfileHandler)
		api.POST("/photos", handlers.AddPhotoHandler)
		api.DELETE("/photos", handlers.RemovePhotoHandler)
	}
}

// RegisterWizardRoutes registers the profile-setup flow endpoints.
func RegisterWizardRoutes(r *gin.Engine) {
	api := r.Group("/api/setup")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.POST("/start", handlers.StartWizardHandler)
		api.GET("/draft", handlers.GetWizardHandler)
		api.PATCH("/draft", handlers.UpdateWizardHandler)
		api.POST("/media", handlers.StageWizardMediaHandler)
		api.POST("/next", handlers.NextWizardStepHandler)
		api.POST("/back", handlers.BackWizardStepHandler)
		api.POST("/complete", handlers.CompleteWizardHandler)
		api.POST("/abandon", handlers.AbandonWizardHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Cupid"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	RegisterAuthRoutes(r)
	RegisterProfileRoutes(r)
	RegisterWizardRoutes(r)
	RegisterHealthRoute(r)
}
