package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/nisantasi/storefront/internal/auth"
	"github.com/nisantasi/storefront/internal/handlers"
	"github.com/nisantasi/storefront/internal/middleware"
)

// RegisterRoutes registers all application routes under /api
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	productHandler *handlers.ProductHandler,
	cartHandler *handlers.CartHandler,
	favoriteHandler *handlers.FavoriteHandler,
	settingsHandler *handlers.SettingsHandler,
	tokenManager *auth.TokenManager,
) {
	authLimit := middleware.RateLimitByIP(middleware.DefaultAuthRateLimit())
	userLimits := middleware.DefaultAuthenticatedRateLimit()

	router.Route("/api", func(r chi.Router) {
		// Public auth endpoints, rate limited by IP
		r.Group(func(r chi.Router) {
			r.Use(authLimit)
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
			r.Post("/auth/refresh", authHandler.RefreshToken)
			r.Post("/auth/verify-email", authHandler.VerifyEmail)
			r.Post("/auth/resend-verification", authHandler.ResendVerification)
		})

		// Public catalog
		r.Get("/products", productHandler.ListProducts)
		r.Get("/products/search", productHandler.SearchProducts)
		r.Get("/products/categories", productHandler.ListCategories)
		r.Get("/products/{id}", productHandler.GetProduct)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(tokenManager))

			r.Get("/auth/verification-status", authHandler.VerificationStatus)

			r.With(middleware.RateLimitByUserID(userLimits, "read")).
				Get("/users/profile", userHandler.GetProfile)
			r.With(middleware.RateLimitByUserID(userLimits, "write")).
				Put("/users/profile", userHandler.UpdateProfile)
			r.With(middleware.RateLimitByUserID(userLimits, "write")).
				Post("/users/avatar", userHandler.UploadAvatar)

			r.Get("/settings", settingsHandler.GetSettings)
			r.Put("/settings", settingsHandler.UpdateSettings)
			r.Delete("/settings", settingsHandler.ResetSettings)

			r.Get("/cart", cartHandler.GetCart)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Put("/cart/items", cartHandler.UpdateItem)
			r.Delete("/cart/items", cartHandler.RemoveItem)
			r.Delete("/cart", cartHandler.ClearCart)

			r.Get("/favorites", favoriteHandler.ListFavorites)
			r.Post("/favorites", favoriteHandler.AddFavorite)
			r.Delete("/favorites/{productId}", favoriteHandler.RemoveFavorite)
		})
	})
}
