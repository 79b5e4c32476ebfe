package server

import (
	"context"
	"net/http"
	"os"

	"github.com/umakantv/go-utils/httpserver"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"

	cachepackage "storefront/cache"
	"storefront/catalog"
	"storefront/config"
	"storefront/database"
	"storefront/handlers"
	"storefront/store"
)

// newStoreLogger builds the zap logger handed to the store package,
// using the same field names as the service logger
func newStoreLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.CallerKey = "file"
	cfg.EncoderConfig.TimeKey = "timestamp"
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log.Named("store")
}

type route struct {
	name, method, path, authType string
	handler                      func(ctx context.Context, w http.ResponseWriter, r *http.Request)
}

func StartServer(cfg *config.Config) {
	// Initialize logger
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})

	logger.Info("Starting Storefront Service...")

	// Initialize database
	dbConn := database.InitializeDatabase(cfg.Database)
	defer dbConn.Close()

	// Initialize cache
	cache := cachepackage.InitializeCache(cfg.Cache)
	defer cache.Close()

	storeLog := newStoreLogger()
	defer storeLog.Sync()

	backend := cachepackage.NewStorageCache(
		database.NewStorageRepo(dbConn),
		cache,
		cfg.GetCacheTTL(),
		storeLog,
	)
	registry := store.NewRegistry(backend, store.RegistryOptions{
		CartKey:    cfg.Storage.CartKey,
		SessionKey: cfg.Storage.SessionKey,
		IdleTTL:    cfg.GetIdleTTL(),
	}, storeLog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go registry.Run(ctx, cfg.GetIdleTTL()/2)

	cookie := handlers.VisitorCookie{
		Name:   cfg.Visitor.CookieName,
		TTL:    cfg.GetCookieTTL(),
		Secure: cfg.Visitor.Secure,
	}

	// Initialize handlers
	products := catalog.Default()
	catalogHandler := handlers.NewCatalogHandler(products)
	cartHandler := handlers.NewCartHandler(products, registry, cookie)
	loginDelay := store.NewDelay(cfg.GetLoginDelay())
	authHandler := handlers.NewAuthHandler(registry, cookie, loginDelay)

	// Create HTTP server; visitor routes are admitted by the cookie callback
	server := httpserver.New(cfg.Server.Port, cookie.CheckAuth)

	server.Register(httpserver.Route{
		Name:     "HealthCheck",
		Method:   "GET",
		Path:     "/health",
		AuthType: "none",
	}, httpserver.HandlerFunc(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "storefront"}`))
	}))

	const visitor = handlers.AuthTypeVisitor
	routes := []route{
		{"ListProducts", "GET", "/products", "none", catalogHandler.ListProducts},
		{"GetProduct", "GET", "/products/{id}", "none", catalogHandler.GetProduct},
		{"ListRecipes", "GET", "/recipes", "none", catalogHandler.ListRecipes},
		{"GetRecipe", "GET", "/recipes/{id}", "none", catalogHandler.GetRecipe},
		{"Search", "GET", "/search", "none", catalogHandler.Search},

		{"GetCart", "GET", "/cart", visitor, cartHandler.GetCart},
		{"ClearCart", "DELETE", "/cart", visitor, cartHandler.ClearCart},
		{"AddCartItem", "POST", "/cart/items", visitor, cartHandler.AddItem},
		{"UpdateCartItem", "PUT", "/cart/items/{id}", visitor, cartHandler.UpdateItem},
		{"RemoveCartItem", "DELETE", "/cart/items/{id}", visitor, cartHandler.RemoveItem},
		{"SetCartDrawer", "PUT", "/cart/drawer", visitor, cartHandler.SetDrawer},

		{"Login", "POST", "/login", visitor, authHandler.Login},
		{"Signup", "POST", "/signup", visitor, authHandler.Signup},
		{"Logout", "POST", "/logout", visitor, authHandler.Logout},
		{"Me", "GET", "/me", visitor, authHandler.Me},
	}
	for _, rt := range routes {
		server.Register(httpserver.Route{
			Name:     rt.name,
			Method:   rt.method,
			Path:     rt.path,
			AuthType: rt.authType,
		}, httpserver.HandlerFunc(rt.handler))
	}

	logger.Info("Storefront Service started",
		zap.String("port", cfg.Server.Port),
		zap.Duration("login_delay", loginDelay.Duration()),
		zap.Duration("visitor_idle_ttl", cfg.GetIdleTTL()),
	)
	logger.Info("Health check: GET /health")
	logger.Info("API endpoints: /products, /recipes, /search, /cart, /login, /signup, /logout, /me")

	// Start server
	if err := server.Start(); err != nil {
		logger.Error("Server failed to start", zap.Error(err))
		os.Exit(1)
	}
}
