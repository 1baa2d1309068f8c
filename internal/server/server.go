package server

import (
	"time"

	"foodgram/internal/config"
	"foodgram/internal/handlers"
	"foodgram/internal/middleware"
	"foodgram/internal/repositories"
	"foodgram/internal/services"
	"foodgram/internal/storage"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Options carries the collaborators the HTTP app is built from.
type Options struct {
	Config *config.Config
	DB     *gorm.DB
	Images storage.ImageStore
	// Events may be nil.
	Events services.EventPublisher
	// Throttle guards the share-link routes. Nil disables throttling.
	Throttle fiber.Handler
	// Shortcode options, e.g. a deterministic generator in tests.
	Shortcode []services.ShortcodeOption
	AccessLog bool
}

// Services exposes the service layer for callers that need it directly.
type Services struct {
	Auth      *services.AuthService
	Users     *services.UserService
	Recipes   *services.RecipeService
	Catalog   *services.CatalogService
	Shortcode *services.ShortcodeService
	Shopping  *services.ShoppingListService
}

// New builds the Fiber app with every route registered.
func New(opts Options) (*fiber.App, *Services) {
	cfg := opts.Config

	userRepo := repositories.NewGORMUserRepository(opts.DB)
	subRepo := repositories.NewGORMSubscriptionRepository(opts.DB)
	catalogRepo := repositories.NewGORMCatalogRepository(opts.DB)
	recipeRepo := repositories.NewGORMRecipeRepository(opts.DB)
	collectionRepo := repositories.NewGORMCollectionRepository(opts.DB)
	shortcodeRepo := repositories.NewGORMShortcodeRepository(opts.DB)

	shortcodeOpts := append([]services.ShortcodeOption{
		services.WithCodeLength(cfg.ShortcodeLength),
		services.WithMaxAttempts(cfg.ShortcodeMaxAttempts),
	}, opts.Shortcode...)

	svc := &Services{
		Auth:      services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL),
		Users:     services.NewUserService(userRepo, subRepo, recipeRepo, opts.Images),
		Recipes:   services.NewRecipeService(recipeRepo, catalogRepo, collectionRepo, subRepo, opts.Images, opts.Events),
		Catalog:   services.NewCatalogService(catalogRepo),
		Shortcode: services.NewShortcodeService(shortcodeRepo, opts.Events, shortcodeOpts...),
		Shopping:  services.NewShoppingListService(collectionRepo),
	}

	app := fiber.New(fiber.Config{
		AppName:     "foodgram",
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middleware.Metrics())
	if opts.AccessLog {
		app.Use(logger.New())
	}

	guards := handlers.Guards{
		Required: middleware.AuthRequired(svc.Auth),
		Optional: middleware.AuthOptional(svc.Auth),
		Throttle: opts.Throttle,
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": opts.Events != nil,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if local, ok := opts.Images.(*storage.LocalStore); ok && cfg.MediaURL != "" && cfg.MediaURL[0] == '/' {
		app.Static(cfg.MediaURL, local.Root)
	}

	api := app.Group("/api")
	handlers.NewAuthHandler(svc.Auth).RegisterRoutes(api, guards)
	handlers.NewUserHandler(svc.Users, svc.Auth, cfg.PageSize).RegisterRoutes(api, guards)
	handlers.NewCatalogHandler(svc.Catalog).RegisterRoutes(api)
	handlers.NewRecipeHandler(svc.Recipes, svc.Shopping, svc.Shortcode, cfg.PageSize, cfg.PublicBaseURL).RegisterRoutes(api, guards)
	handlers.NewShortLinkHandler(svc.Shortcode, cfg.PublicBaseURL).RegisterRoutes(app, guards)

	return app, svc
}
