package api

import (
	"net/http"
	"time"

	"farmdirect/internal/api/handler"
	"farmdirect/internal/app/service"
	"farmdirect/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	registrationService *service.RegistrationService,
	farmerService *service.FarmerService,
	productService *service.ProductService,
	membershipService *service.MembershipService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies the bearer token and puts claims in context; individual
	// route groups decide whether authentication is required.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService)
		v1.Route("/auth", authHandler.RegisterRoutes)

		// Registration wizard (public entry, session travels in the flow)
		registrationHandler := handler.NewRegistrationHandler(registrationService)
		v1.Route("/register", registrationHandler.RegisterRoutes)

		// Specification templates (public, the product form reads these)
		specHandler := handler.NewSpecHandler()
		v1.Route("/spec-templates", specHandler.RegisterRoutes)

		// Product catalog (public reads)
		productHandler := handler.NewProductHandler(productService)
		v1.Route("/products", productHandler.RegisterRoutes)

		// Seller dashboard (authenticated)
		farmerHandler := handler.NewFarmerHandler(farmerService)
		v1.Route("/sellers/me", func(me chi.Router) {
			me.Route("/products", productHandler.RegisterSellerRoutes)
			me.Route("/profile", farmerHandler.RegisterRoutes)
		})

		// Prime memberships (authenticated)
		membershipHandler := handler.NewMembershipHandler(membershipService)
		v1.Route("/memberships", membershipHandler.RegisterRoutes)
	})

	return r
}
