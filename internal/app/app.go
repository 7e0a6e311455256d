package app

import (
	"scraplink-backend/internal/auth"
	"scraplink-backend/internal/config"
	"scraplink-backend/internal/database"
	"scraplink-backend/internal/health"
	"scraplink-backend/internal/listings"
	"scraplink-backend/internal/mapfeed"
	"scraplink-backend/internal/middleware"
	"scraplink-backend/internal/store"
	"scraplink-backend/internal/uploads"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. The DB and Redis handles are returned so main can verify
// connectivity before listening.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	sessionHandler, rdb, err := middleware.Session(middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	})
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	healthHandlers := &health.Handlers{DB: db, Rdb: rdb}
	app.Get("/health/json", healthHandlers.JSON)

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	var userFinder auth.UserFinder
	if db != nil {
		userFinder = &auth.GormUserFinder{DB: db}
	}
	authHandlers := &auth.Handlers{DB: db, UserFinder: userFinder, Rdb: rdb, Config: sessionCfg}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/register", authHandlers.Register)
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	if db != nil {
		listingStore := &store.GormListingStore{DB: db}

		// Map feed is public: any browser may see active listings.
		mapService := &mapfeed.Service{Store: listingStore}
		mapHandlers := &mapfeed.Handlers{Service: mapService}
		app.Get("/api/v1/map/active-listings", mapHandlers.ActiveListings)

		listingService := &listings.Service{Store: listingStore}
		listingHandlers := &listings.Handlers{Service: listingService}
		listingGroup := app.Group("/api/v1/listings", middleware.RequireAuth())
		listingGroup.Post("/create-listing", listingHandlers.CreateListing)
		listingGroup.Get("/my-listings", listingHandlers.MyListings)
		listingGroup.Get("/my-pickups", listingHandlers.MyPickups)
		listingGroup.Get("/get-listing/:listing_id", listingHandlers.GetListingByID)
		listingGroup.Post("/claim-listing", listingHandlers.ClaimListing)
		listingGroup.Post("/dispute-pickup", listingHandlers.DisputePickup)
		listingGroup.Post("/finalize-pickup", listingHandlers.FinalizePickup)
		listingGroup.Post("/withdraw-listing", listingHandlers.WithdrawListing)
		listingGroup.Put("/edit-listing", listingHandlers.EditListing)
	}

	storageClient := &uploads.HTTPClient{
		BaseURL:   cfg.SupabaseURL,
		SecretKey: cfg.SupabaseSecretKey,
	}
	uploadService := &uploads.Service{Client: storageClient, SupabaseURL: cfg.SupabaseURL}
	uploadHandlers := &uploads.Handlers{Service: uploadService}
	uploadGroup := app.Group("/api/v1/uploads", middleware.RequireAuth())
	uploadGroup.Post("/listing-photo", uploadHandlers.UploadListingPhoto)

	return app, db, rdb, nil
}
