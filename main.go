// @title JP Performance Cars API
// @version 1.0
// @description Parts catalog, OBD diagnostics, cart, checkout and admin CMS for JP Performance Cars.
// @host localhost:8081
// @BasePath /api/v1
// @schemes http https
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/cart"
	"github.com/bodthegod/jpperformancecars-backend/checkout"
	"github.com/bodthegod/jpperformancecars-backend/config"
	admin_auth "github.com/bodthegod/jpperformancecars-backend/controllers/cms/admin_controller/auth"
	"github.com/bodthegod/jpperformancecars-backend/controllers/cms/order_controller"
	"github.com/bodthegod/jpperformancecars-backend/controllers/cms/part_controller"
	"github.com/bodthegod/jpperformancecars-backend/controllers/ecommerce/cart_controller"
	"github.com/bodthegod/jpperformancecars-backend/controllers/health_controller"
	_ "github.com/bodthegod/jpperformancecars-backend/docs"
	"github.com/bodthegod/jpperformancecars-backend/middleware"
	"github.com/bodthegod/jpperformancecars-backend/payments"
	"github.com/bodthegod/jpperformancecars-backend/routes/cms_routes"
	"github.com/bodthegod/jpperformancecars-backend/routes/ecommerce_routes"
	"github.com/bodthegod/jpperformancecars-backend/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const cartTTL = 30 * 24 * time.Hour

func init() {
	_ = godotenv.Load()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to DB
	config.InitDB(cfg)
	defer config.CloseDB()
	// Redis connection
	config.ConnectRedis(cfg)
	defer config.CloseRedis()

	// ✅ Initialize JWT Service for Admin Auth
	if err := services.InitJWTService(cfg.JWTSecret); err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}
	log.Println("✅ JWT Service initialized")

	services.InitActivityLogService(config.DB)
	sessions := services.NewAdminSessionService(config.DB)
	admin_auth.Init(sessions, cfg.IsProduction())

	// Initialize Cloudinary service
	if cfg.Cloudinary != nil {
		cld, err := services.NewCloudinaryService(*cfg.Cloudinary)
		if err != nil {
			log.Fatalf("Failed to initialize Cloudinary: %v", err)
		}
		part_controller.InitImageStore(cld)
	}

	feed := services.NewOrderFeed(cfg.AllowedOrigins)
	notifiers := []checkout.OrderNotifier{feed}
	var mailer *services.OrderMailer
	if cfg.Resend != nil {
		business := services.DefaultBusiness
		business.Email = cfg.SupportEmail
		mailer = services.NewOrderMailer(services.NewResendClient(cfg.Resend), business)
		notifiers = append(notifiers, mailer)
	}

	carts := cart.NewStore(cart.NewRedisPersister(config.RedisClient, cartTTL))
	reconcile := checkout.NewRedisReconciliationQueue(config.RedisClient)
	gateway := payments.NewStripeGateway(cfg.Stripe.SecretKey)
	flow := checkout.NewFlow(
		carts,
		checkout.NewRedisSessionStore(config.RedisClient),
		gateway,
		checkout.NewGormOrderWriter(config.DB),
		reconcile,
		checkout.Options{Currency: cfg.Stripe.Currency, Notifiers: notifiers},
	)
	order_controller.Init(mailer, feed, reconcile)

	deps := ecommerce_routes.Deps{
		Carts:        carts,
		Checkout:     flow,
		FindPart:     cart_controller.FindPartInDB(config.DB),
		Searches:     services.NewLatestOnly(),
		SecureCookie: cfg.IsProduction(),
	}
	if cfg.EmailJS != nil {
		deps.Forms = services.NewEmailJSClient(*cfg.EmailJS)
	}

	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		ExposeHeaders:    []string{"Content-Disposition", "Content-Length"},
	}

	router := gin.Default()
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", health_controller.Healthz)
	router.GET("/readyz", health_controller.Readyz(map[string]health_controller.Check{
		"postgres": config.Pool.Ping,
		"redis":    func(ctx context.Context) error { return config.RedisClient.Ping(ctx).Err() },
	}))

	// Stripe's client and webhook expect the unversioned paths.
	ecommerce_routes.SetupPaymentRoutes(router.Group("/api"), gateway, cfg.Stripe.Currency, flow, cfg.Stripe.WebhookSecret)

	api := router.Group("/api/v1")

	// ✅ Setup Admin Routes (at /api/v1/admin prefix)
	adminGroup := cms_routes.SetupAdminRoutes(api, sessions)
	adminGroup.Use(middleware.RateLimiter(100, time.Minute))
	cms_routes.SetupPartRoutes(adminGroup)
	cms_routes.SetupOBDRoutes(adminGroup)
	cms_routes.SetupOrderRoutes(adminGroup)
	cms_routes.SetupAnalyticsRoutes(adminGroup)
	log.Println("✅ Admin routes registered")

	// Public storefront
	ecommerce_routes.SetupStorefrontRoutes(api, deps)

	// Swagger docs
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("🚀 Server is running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Graceful shutdown failed: %v", err)
	}
}
