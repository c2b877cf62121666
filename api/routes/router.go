package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zuriwear/zuri-backend/api/controllers"
	"github.com/zuriwear/zuri-backend/api/middleware"
	"github.com/zuriwear/zuri-backend/internal/auth"
	"github.com/zuriwear/zuri-backend/internal/cart"
	checkoutsvc "github.com/zuriwear/zuri-backend/internal/checkout"
	"github.com/zuriwear/zuri-backend/internal/commute"
	"github.com/zuriwear/zuri-backend/internal/newsletter"
	"github.com/zuriwear/zuri-backend/internal/orders"
	"github.com/zuriwear/zuri-backend/internal/products"
	"github.com/zuriwear/zuri-backend/internal/promo"
	"github.com/zuriwear/zuri-backend/internal/wishlist"
	"github.com/zuriwear/zuri-backend/pkg/auth/session"
	"github.com/zuriwear/zuri-backend/pkg/config"
	"github.com/zuriwear/zuri-backend/pkg/db"
	"github.com/zuriwear/zuri-backend/pkg/enums"
	"github.com/zuriwear/zuri-backend/pkg/logger"
	"github.com/zuriwear/zuri-backend/pkg/maps"
	"github.com/zuriwear/zuri-backend/pkg/metrics"
	"github.com/zuriwear/zuri-backend/pkg/redis"
)

// Params carries everything the router wires into controllers.
type Params struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      db.Pinger
	Redis   *redis.Client
	Session session.AccessSessionChecker

	AuthService       auth.Service
	ProductService    products.Service
	CartService       cart.Service
	WishlistService   wishlist.Service
	PromoService      promo.Service
	CheckoutService   checkoutsvc.Service
	OrdersService     orders.Service
	NewsletterService newsletter.Service
	CommuteService    commute.Service
	MapsClient        *maps.Client

	HTTPMetrics     *metrics.HTTPMetrics
	MetricsGatherer prometheus.Gatherer
}

func NewRouter(p Params) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(p.HTTPMetrics),
	)

	authed := middleware.Auth(cfg.JWT, cfg.Redis.SessionCheckTimeout, p.Session, logg)
	maybeAuthed := middleware.OptionalAuth(cfg.JWT, cfg.Redis.SessionCheckTimeout, p.Session, logg)
	device := middleware.RequireDevice(logg)

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

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.DB, p.Redis))
	})

	if p.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).Post("/register", controllers.AuthRegister(p.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(p.AuthService, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.AuthService, logg))
		r.Get("/email-exists", controllers.AuthEmailExists(p.AuthService, logg))
	})

	r.Route("/api/v1/profile", func(r chi.Router) {
		r.Use(authed)
		r.Get("/", controllers.ProfileGet(p.AuthService, logg))
		r.Patch("/", controllers.ProfileUpdate(p.AuthService, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(p.ProductService, logg))
		r.Get("/{productId}", controllers.ProductDetail(p.ProductService, logg))
		r.Group(func(r chi.Router) {
			r.Use(device)
			r.Get("/search", controllers.ProductSearch(p.ProductService, logg))
			r.Get("/searches", controllers.ProductRecentSearches(p.ProductService, logg))
		})
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(device)
		r.Get("/", controllers.CartGet(p.CartService, logg))
		r.Delete("/", controllers.CartClear(p.CartService, logg))
		r.Post("/items", controllers.CartAddItem(p.CartService, logg))
		r.Delete("/items", controllers.CartRemoveItem(p.CartService, logg))
		r.Patch("/items", controllers.CartUpdateQuantity(p.CartService, logg))
		r.Get("/contains", controllers.CartContains(p.CartService, logg))
	})

	r.Route("/api/v1/wishlist", func(r chi.Router) {
		r.Use(device)
		r.Get("/", controllers.WishlistGet(p.WishlistService, logg))
		r.Post("/items", controllers.WishlistAdd(p.WishlistService, logg))
		r.Delete("/items/{productId}", controllers.WishlistRemove(p.WishlistService, logg))
		r.Post("/toggle", controllers.WishlistToggle(p.WishlistService, logg))
		r.Get("/contains", controllers.WishlistContains(p.WishlistService, logg))
	})

	r.Route("/api/v1/promo", func(r chi.Router) {
		r.With(device).Get("/banner", controllers.PromoBanner(p.PromoService, p.CartService, logg))
		r.Post("/redeem", controllers.PromoRedeem(p.PromoService, logg))
	})

	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Use(device)
		r.Get("/session", controllers.CheckoutSession(p.CheckoutService, logg))
		r.Delete("/session", controllers.CheckoutReset(p.CheckoutService, logg))
		r.Put("/shipping", controllers.CheckoutShipping(p.CheckoutService, logg))
		r.Post("/promo", controllers.CheckoutPromo(p.CheckoutService, logg))
		r.With(maybeAuthed).Post("/submit", controllers.CheckoutSubmit(p.CheckoutService, logg))
	})

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.With(authed).Get("/", controllers.OrdersList(p.OrdersService, logg))
		r.Get("/lookup", controllers.OrdersByPhone(p.OrdersService, logg))
		r.Get("/{orderNumber}", controllers.OrderByNumber(p.OrdersService, logg))
		r.With(maybeAuthed).Post("/{orderNumber}/cancel", controllers.OrderCancel(p.OrdersService, logg))
	})

	r.Post("/api/v1/newsletter/subscribe", controllers.NewsletterSubscribe(p.NewsletterService, logg))

	r.Route("/api/v1/commute", func(r chi.Router) {
		r.Use(authed)
		r.Get("/", controllers.CommuteList(p.CommuteService, logg))
		r.Post("/", controllers.CommuteAdd(p.CommuteService, logg))
		r.Patch("/{destinationId}", controllers.CommuteUpdate(p.CommuteService, logg))
		r.Delete("/{destinationId}", controllers.CommuteDelete(p.CommuteService, logg))
		r.Post("/{destinationId}/select", controllers.CommuteSelect(p.CommuteService, logg))
		r.Get("/places/autocomplete", controllers.PlacesAutocomplete(p.MapsClient, logg))
	})

	r.Route("/api/admin/v1/orders", func(r chi.Router) {
		r.Use(authed)
		r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))
		r.Get("/", controllers.AdminOrdersList(p.OrdersService, logg))
		r.Patch("/{orderId}/status", controllers.AdminOrderStatus(p.OrdersService, logg))
		r.Patch("/{orderId}/payment-status", controllers.AdminOrderPaymentStatus(p.OrdersService, logg))
		r.Patch("/{orderId}/delivery-status", controllers.AdminOrderDeliveryStatus(p.OrdersService, logg))
	})

	return r
}
