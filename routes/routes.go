package routes

import (
	"net/http"
	"time"

	"gearbook/handlers"
	"gearbook/middleware"
	"gearbook/models"
	"gearbook/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// staticListTTL is how long the static lookup lists (categories, conditions,
// statuses) stay cached.
const staticListTTL = 5 * time.Minute

// RegisterAuthRoutes registers registration, login, and password recovery.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)
		api.POST("/forgot-password", hb.Auth.ForgotPasswordHandler)
		api.POST("/reset-password", hb.Auth.ResetPasswordHandler)

		api.POST("/logout", middleware.RequireAuth(hb.Verifier), hb.Auth.LogoutHandler)
		api.POST("/upload-verification",
			middleware.RequireAuth(hb.Verifier), middleware.RequireRoles(models.RoleOwner),
			hb.User.UploadVerificationDocumentHandler)
	}
}

// RegisterUserRoutes registers profile and account-administration endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	api.Use(middleware.RequireAuth(hb.Verifier))
	{
		api.GET("/profile", hb.User.GetProfileHandler)
		api.PUT("/profile", hb.User.UpdateProfileHandler)
		api.DELETE("/profile", hb.User.DeleteAccountHandler)

		// Admin console.
		admin := api.Group("")
		admin.Use(middleware.RequireRoles(models.RoleAdmin))
		admin.GET("", hb.Admin.GetAllUsersHandler)
		admin.GET("/unverified-users", hb.Admin.GetUnverifiedUsersHandler)
		admin.POST("/verify-collector/:id", hb.Admin.VerifyOwnerHandler)
		admin.GET("/id/:id", hb.User.GetUserByIDHandler)
		admin.DELETE("/id/:id", hb.Admin.DeleteUserHandler)
	}
}

// RegisterCategoryRoutes registers the category catalogue. Reads are public
// and served through the response cache; writes are admin only.
func RegisterCategoryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/categories")
	{
		cached := middleware.CacheResponse(hb.CacheStore, staticListTTL)
		api.GET("", cached, hb.Category.GetAllCategoriesHandler)
		api.GET("/calculation-types", cached, hb.Category.GetCalculationTypesHandler)
		api.GET("/:id", hb.Category.GetCategoryHandler)

		admin := api.Group("")
		admin.Use(middleware.RequireAuth(hb.Verifier), middleware.RequireRoles(models.RoleAdmin))
		admin.POST("", hb.Category.CreateCategoryHandler)
		admin.PUT("/:id", hb.Category.UpdateCategoryHandler)
		admin.DELETE("/:id", hb.Category.DeleteCategoryHandler)
	}
}

// RegisterMachineRoutes registers the listing endpoints. Browsing is public;
// listing management requires a verified owner.
func RegisterMachineRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/machines")
	{
		cached := middleware.CacheResponse(hb.CacheStore, staticListTTL)
		api.GET("", hb.Machine.GetAllMachinesHandler)
		api.GET("/machineConditions", cached, hb.Machine.GetMachineConditionsHandler)
		api.POST("/search", hb.Machine.SearchMachinesHandler)
		api.GET("/owners/:ownerId", hb.Machine.GetMachinesByOwnerHandler)
		api.GET("/:id", hb.Machine.GetMachineHandler)
		api.GET("/:id/images", hb.Machine.ListMachineImagesHandler)
		api.GET("/:id/reviews", hb.Review.GetMachineReviewsHandler)

		owner := api.Group("")
		owner.Use(middleware.RequireAuth(hb.Verifier), middleware.RequireRoles(models.RoleOwner))
		owner.GET("/mine", hb.Machine.GetMyMachinesHandler)
		owner.POST("", hb.Machine.CreateMachineHandler)
		owner.PUT("/:id", hb.Machine.UpdateMachineHandler)
		owner.DELETE("/:id", hb.Machine.DeleteMachineHandler)
		owner.PUT("/change-availability", hb.Machine.ChangeAvailabilityHandler)

		owner.POST("/:id/images", hb.Machine.AddMachineImageHandler)
		owner.DELETE("/:id/images/:imageId", hb.Machine.DeleteMachineImageHandler)
		owner.PUT("/:id/images/:imageId/primary", hb.Machine.SetPrimaryMachineImageHandler)

		owner.POST("/:id/records", hb.Record.FileRecordHandler)

		records := api.Group("")
		records.Use(middleware.RequireAuth(hb.Verifier),
			middleware.RequireRoles(models.RoleOwner, models.RoleAdmin))
		records.GET("/:id/records", hb.Record.GetMachineRecordsHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints. Everything
// here requires authentication.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	api.Use(middleware.RequireAuth(hb.Verifier))
	{
		cached := middleware.CacheResponse(hb.CacheStore, staticListTTL)
		api.GET("/booking-status-list", cached, hb.Booking.GetBookingStatusListHandler)
		api.GET("/user/:userId", hb.Booking.GetUserBookingsHandler)
		api.GET("/owner/:ownerId", hb.Booking.GetOwnerBookingsHandler)
		api.GET("/machine/:machineId", hb.Booking.GetMachineBookingsHandler)
		api.GET("/get-by-code/:code",
			middleware.RequireRoles(models.RoleOwner, models.RoleAdmin), hb.Booking.GetBookingByCodeHandler)
		api.GET("/:id", hb.Booking.GetBookingHandler)
		api.GET("/:id/reviews", hb.Review.GetBookingReviewsHandler)

		customer := api.Group("")
		customer.Use(middleware.RequireRoles(models.RoleCustomer))
		customer.POST("", hb.Booking.CreateBookingHandler)
		customer.PUT("/:id", hb.Booking.UpdateBookingHandler)
		customer.DELETE("/:id", hb.Booking.CancelBookingHandler)
		customer.POST("/:id/reviews", hb.Review.CreateReviewHandler)

		api.PUT("/:id/status-update",
			middleware.RequireRoles(models.RoleOwner, models.RoleAdmin), hb.Booking.UpdateBookingStatusHandler)
	}
}

// RegisterReviewRoutes registers direct review access.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		api.GET("/machine/:id", hb.Review.GetMachineReviewsHandler)
		api.GET("/:id", hb.Review.GetReviewHandler)

		customer := api.Group("")
		customer.Use(middleware.RequireAuth(hb.Verifier), middleware.RequireRoles(models.RoleCustomer))
		customer.PUT("/:id", hb.Review.UpdateReviewHandler)
		customer.DELETE("/:id", hb.Review.DeleteReviewHandler)
	}
}

// RegisterRecordRoutes registers the admin side of maintenance records.
func RegisterRecordRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/records")
	api.Use(middleware.RequireAuth(hb.Verifier), middleware.RequireRoles(models.RoleAdmin))
	{
		api.GET("/unreviewed", hb.Admin.GetUnreviewedRecordsHandler)
		api.PUT("/:id/review", hb.Admin.ReviewRecordHandler)
	}
}

// RegisterHealthRoute registers the health-check endpoint. It serves the
// latest dependency snapshot and degrades the status code when Mongo or
// Redis stopped answering.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		snapshot := utils.GetHealthStatus()
		if !snapshot.Healthy() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "dependencies": snapshot})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": snapshot})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterCategoryRoutes(r, hb)
	RegisterMachineRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterRecordRoutes(r, hb)
	RegisterHealthRoute(r)
}
