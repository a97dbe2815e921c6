package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/printcraftlabs/printcraft-backend/api/controllers"
	"github.com/printcraftlabs/printcraft-backend/api/middleware"
	analyticssvc "github.com/printcraftlabs/printcraft-backend/internal/analytics"
	authsvc "github.com/printcraftlabs/printcraft-backend/internal/auth"
	cartsvc "github.com/printcraftlabs/printcraft-backend/internal/cart"
	categorysvc "github.com/printcraftlabs/printcraft-backend/internal/categories"
	couponsvc "github.com/printcraftlabs/printcraft-backend/internal/coupons"
	ordersvc "github.com/printcraftlabs/printcraft-backend/internal/orders"
	pricingsvc "github.com/printcraftlabs/printcraft-backend/internal/pricing"
	productsvc "github.com/printcraftlabs/printcraft-backend/internal/products"
	userssvc "github.com/printcraftlabs/printcraft-backend/internal/users"
	"github.com/printcraftlabs/printcraft-backend/pkg/auth/session"
	"github.com/printcraftlabs/printcraft-backend/pkg/config"
	"github.com/printcraftlabs/printcraft-backend/pkg/db"
	"github.com/printcraftlabs/printcraft-backend/pkg/enums"
	"github.com/printcraftlabs/printcraft-backend/pkg/logger"
	"github.com/printcraftlabs/printcraft-backend/pkg/metrics"
	"github.com/printcraftlabs/printcraft-backend/pkg/redis"
)

// Deps carries every service and infrastructure handle the router wires up.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	Sessions    session.AccessSessionChecker
	HTTPMetrics *metrics.HTTPMetrics

	Auth       authsvc.Service
	Users      userssvc.Service
	Products   productsvc.Service
	Categories categorysvc.Service
	Coupons    couponsvc.Service
	Tiers      pricingsvc.TierService
	Cart       *cartsvc.Store
	Orders     ordersvc.Service
	Analytics  analyticssvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	r.Handle("/metrics", promhttp.Handler())

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Public storefront surface.
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Products, logg))
			r.Get("/{productId}", controllers.GetProduct(deps.Products, logg))
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(deps.Categories, logg))
			r.Get("/{categoryId}", controllers.GetCategory(deps.Categories, logg))
		})
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).
				Post("/register", controllers.AuthRegister(deps.Auth, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
				Post("/login", controllers.AuthLogin(deps.Auth, logg))
			r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
				r.Post("/logout", controllers.AuthLogout(deps.Auth, logg))
				r.Get("/me", controllers.AuthMe(deps.Users, logg))
			})
		})

		// Authenticated storefront surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
			r.Use(middleware.Idempotency(deps.Redis, logg))

			r.Post("/coupons/validate", controllers.ValidateCoupon(deps.Coupons, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(deps.Cart, logg))
				r.Post("/items", controllers.AddCartItem(deps.Cart, logg))
				r.Put("/items/{productId}", controllers.UpdateCartItem(deps.Cart, logg))
				r.Delete("/items/{productId}", controllers.RemoveCartItem(deps.Cart, logg))
				r.Delete("/", controllers.ClearCart(deps.Cart, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", controllers.SubmitOrder(deps.Orders, deps.Cart, logg))
				r.Get("/", controllers.ListMyOrders(deps.Orders, logg))
				r.Get("/{orderId}", controllers.GetOrder(deps.Orders, logg))
			})
		})

		// Back office.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
			r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))
			r.Use(middleware.Idempotency(deps.Redis, logg))

			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.AdminCreateProduct(deps.Products, logg))
				r.Patch("/{productId}", controllers.AdminUpdateProduct(deps.Products, logg))
				r.Delete("/{productId}", controllers.AdminDeleteProduct(deps.Products, logg))
			})

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", controllers.AdminCreateCategory(deps.Categories, logg))
				r.Patch("/{categoryId}", controllers.AdminUpdateCategory(deps.Categories, logg))
				r.Delete("/{categoryId}", controllers.AdminDeleteCategory(deps.Categories, logg))
			})

			r.Route("/coupons", func(r chi.Router) {
				r.Get("/", controllers.AdminListCoupons(deps.Coupons, logg))
				r.Post("/", controllers.AdminCreateCoupon(deps.Coupons, logg))
				r.Patch("/{couponId}", controllers.AdminUpdateCoupon(deps.Coupons, logg))
				r.Delete("/{couponId}", controllers.AdminDeleteCoupon(deps.Coupons, logg))
			})

			r.Route("/discount-tiers", func(r chi.Router) {
				r.Get("/", controllers.AdminListTiers(deps.Tiers, logg))
				r.Post("/", controllers.AdminCreateTier(deps.Tiers, logg))
				r.Patch("/{tierId}", controllers.AdminUpdateTier(deps.Tiers, logg))
				r.Delete("/{tierId}", controllers.AdminDeleteTier(deps.Tiers, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminListOrders(deps.Orders, logg))
				r.Patch("/{orderId}/status", controllers.AdminUpdateOrderStatus(deps.Orders, logg))
			})

			r.Get("/users", controllers.AdminListUsers(deps.Users, logg))
			r.Get("/dashboard", controllers.AdminDashboard(deps.Analytics, logg))
		})
	})

	return r
}
