package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/zuriwear/zuri-backend/api/routes"
	"github.com/zuriwear/zuri-backend/internal/auth"
	"github.com/zuriwear/zuri-backend/internal/cart"
	checkoutsvc "github.com/zuriwear/zuri-backend/internal/checkout"
	"github.com/zuriwear/zuri-backend/internal/commute"
	"github.com/zuriwear/zuri-backend/internal/newsletter"
	"github.com/zuriwear/zuri-backend/internal/orders"
	"github.com/zuriwear/zuri-backend/internal/products"
	"github.com/zuriwear/zuri-backend/internal/promo"
	"github.com/zuriwear/zuri-backend/internal/users"
	"github.com/zuriwear/zuri-backend/internal/wishlist"
	"github.com/zuriwear/zuri-backend/pkg/auth/session"
	"github.com/zuriwear/zuri-backend/pkg/config"
	"github.com/zuriwear/zuri-backend/pkg/db"
	"github.com/zuriwear/zuri-backend/pkg/logger"
	"github.com/zuriwear/zuri-backend/pkg/maps"
	"github.com/zuriwear/zuri-backend/pkg/metrics"
	"github.com/zuriwear/zuri-backend/pkg/migrate"
	"github.com/zuriwear/zuri-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	usersRepo := users.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	searches, err := products.NewRecentSearches(redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create search history", err)
		os.Exit(1)
	}
	productService, err := products.NewService(products.ServiceParams{
		Repo:     products.NewRepository(dbClient.DB()),
		Searches: searches,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create products service", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewStore(redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(cartStore, cfg.Checkout)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	wishlistStore, err := wishlist.NewStore(redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist store", err)
		os.Exit(1)
	}
	wishlistService, err := wishlist.NewService(wishlistStore)
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	promoService, err := promo.NewService(cfg.Promo)
	if err != nil {
		logg.Error(context.Background(), "failed to create promo service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.ServiceParams{
		Repo:   orders.NewRepository(dbClient.DB()),
		Client: dbClient,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	checkoutStore, err := checkoutsvc.NewStore(redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout store", err)
		os.Exit(1)
	}
	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		Store:    checkoutStore,
		Cart:     cartService,
		Orders:   ordersService,
		Promo:    promoService,
		Users:    usersRepo,
		Config:   cfg.Checkout,
		Password: cfg.Password,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	newsletterService, err := newsletter.NewService(newsletter.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create newsletter service", err)
		os.Exit(1)
	}

	// The commute widget only comes alive with a Maps key; without one the
	// routes stay mounted and answer with a dependency error.
	var mapsClient *maps.Client
	var commuteService commute.Service
	if cfg.Maps.APIKey != "" {
		mapsClient, err = maps.NewClient(cfg.Maps.APIKey)
		if err != nil {
			logg.Error(context.Background(), "failed to create maps client", err)
			os.Exit(1)
		}
		commuteService, err = commute.NewService(commute.ServiceParams{
			Repo:   commute.NewRepository(dbClient.DB()),
			Router: mapsClient,
			Config: cfg.Maps,
		})
		if err != nil {
			logg.Error(context.Background(), "failed to create commute service", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "maps api key not set, commute widget disabled")
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.NewRouter(routes.Params{
		Config:  cfg,
		Logger:  logg,
		DB:      dbClient,
		Redis:   redisClient,
		Session: sessionManager,

		AuthService:       authService,
		ProductService:    productService,
		CartService:       cartService,
		WishlistService:   wishlistService,
		PromoService:      promoService,
		CheckoutService:   checkoutService,
		OrdersService:     ordersService,
		NewsletterService: newsletterService,
		CommuteService:    commuteService,
		MapsClient:        mapsClient,

		HTTPMetrics:     httpMetrics,
		MetricsGatherer: registry,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		sigCtx := logg.WithField(ctx, "signal", sig.String())
		logg.Info(sigCtx, "shutting down api server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()

		closeErr := server.Shutdown(shutdownCtx)
		closeErr = multierr.Append(closeErr, redisClient.Close())
		closeErr = multierr.Append(closeErr, dbClient.Close())
		if closeErr != nil {
			logg.Error(sigCtx, "shutdown finished with errors", closeErr)
			os.Exit(1)
		}
		logg.Info(sigCtx, "shutdown complete")
	}
}
