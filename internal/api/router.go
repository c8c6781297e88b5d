package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/blogora/blog-api/internal/api/handler"
	"github.com/blogora/blog-api/internal/api/middleware"
	"github.com/blogora/blog-api/internal/core/ports"
	"github.com/blogora/blog-api/internal/core/service"
	"github.com/blogora/blog-api/internal/core/token"
	mongodb "github.com/blogora/blog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/blogora/blog-api/internal/infrastructure/db/redis"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Dependencies carries the externally constructed resources the router wires
// into repositories, services and handlers.
type Dependencies struct {
	Mongo        *mongo.Database
	Redis        *redis.Client
	Blobs        ports.BlobStorage
	Notifier     ports.Notifier
	Issuer       *token.Issuer
	ClientDomain string
	Logger       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("blog"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(deps.Mongo)
	postRepo := mongodb.NewPostRepository(deps.Mongo)
	commentRepo := mongodb.NewCommentRepository(deps.Mongo)
	categoryRepo := mongodb.NewCategoryRepository(deps.Mongo)
	verificationStore := redisdb.NewVerificationStore(deps.Redis)

	// --- Services ---
	cascade := service.NewCoordinator(userRepo, postRepo, commentRepo, deps.Blobs, deps.Logger)
	authService := service.NewAuthService(userRepo, verificationStore, deps.Notifier, deps.Issuer, deps.ClientDomain, deps.Logger)
	userService := service.NewUserService(userRepo, deps.Blobs, cascade, deps.Logger)
	postService := service.NewPostService(postRepo, deps.Blobs, cascade, deps.Logger)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo, deps.Logger)
	categoryService := service.NewCategoryService(categoryRepo, deps.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)
	categoryHandler := handler.NewCategoryHandler(categoryService)

	requireAuth := middleware.Auth(deps.Issuer)
	optionalAuth := middleware.OptionalAuth(deps.Issuer)

	apiGroup := e.Group("/api")

	// --- Auth routes ---
	auth := apiGroup.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/:userId/verify/:token", authHandler.Verify)

	// --- User routes ---
	users := apiGroup.Group("/users")
	users.GET("", userHandler.List, requireAuth)
	users.GET("/count", userHandler.Count, requireAuth)
	users.GET("/:id", userHandler.Get, optionalAuth)
	users.PUT("/:id", userHandler.Update, requireAuth)
	users.DELETE("/:id", userHandler.Delete, requireAuth)
	users.POST("/profile-photo", userHandler.UploadProfilePhoto, requireAuth)

	// --- Post routes ---
	posts := apiGroup.Group("/posts")
	posts.GET("", postHandler.List, optionalAuth)
	posts.POST("", postHandler.Create, requireAuth)
	posts.GET("/count", postHandler.Count)
	posts.GET("/:id", postHandler.Get, optionalAuth)
	posts.PUT("/:id", postHandler.Update, requireAuth)
	posts.DELETE("/:id", postHandler.Delete, requireAuth)
	posts.PUT("/:id/image", postHandler.UpdateImage, requireAuth)
	posts.PUT("/:id/like", postHandler.ToggleLike, requireAuth)

	// --- Comment routes ---
	comments := apiGroup.Group("/comments")
	comments.GET("", commentHandler.List, requireAuth)
	comments.POST("", commentHandler.Create, requireAuth)
	comments.PUT("/:id", commentHandler.Update, requireAuth)
	comments.DELETE("/:id", commentHandler.Delete, requireAuth)

	// --- Category routes ---
	categories := apiGroup.Group("/categories")
	categories.GET("", categoryHandler.List)
	categories.POST("", categoryHandler.Create, requireAuth)
	categories.DELETE("/:id", categoryHandler.Delete, requireAuth)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
