package server

import (
	"blogger-platform/internal/cache"
	"blogger-platform/internal/config"
	"blogger-platform/internal/database"
	"blogger-platform/internal/domain/auth"
	"blogger-platform/internal/domain/blog"
	"blogger-platform/internal/domain/comment"
	"blogger-platform/internal/domain/like"
	"blogger-platform/internal/domain/post"
	"blogger-platform/internal/domain/session"
	"blogger-platform/internal/domain/user"
	"blogger-platform/internal/notifications"
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes wires repositories, services and handlers and registers all
// HTTP routes under /api.
func SetupRoutes(app *fiber.App, cfg *config.Config) {
	api := app.Group("/api")

	// Initialize repositories
	userRepo := user.NewRepository(database.DB)
	sessionRepo := session.NewRepository(database.DB)
	blogRepo := blog.NewRepository(database.DB)
	postRepo := post.NewRepository(database.DB)
	commentRepo := comment.NewRepository(database.DB)
	likeRepo := like.NewRepository(database.DB)

	// Initialize services
	codec := auth.NewTokenCodec(&cfg.Auth)
	revocationCache := cache.NewDeviceRevocationCache()
	sessionService := session.NewService(sessionRepo, cfg.Auth.Tolerance())
	authService := auth.NewService(userRepo, sessionService, codec, revocationCache, notifications.NewLogSender())
	userService := user.NewService(userRepo)
	blogService := blog.NewService(blogRepo)
	postService := post.NewService(postRepo, blogService, likeRepo)
	commentService := comment.NewService(commentRepo, postService, likeRepo)

	// Initialize handlers
	authHandler := auth.NewHandler(authService)
	securityHandler := auth.NewSecurityHandler(sessionService, revocationCache, cfg.Auth.AccessTTL())
	userHandler := user.NewHandler(userService)
	blogHandler := blog.NewHandler(blogService)
	postHandler := post.NewHandler(postService)
	commentHandler := comment.NewHandler(commentService)

	bearer := auth.BearerMiddleware(codec, revocationCache)
	optionalBearer := auth.OptionalBearerMiddleware(codec, revocationCache)
	refreshGuard := auth.RefreshGuard(codec, sessionService)
	basicAuth := auth.BasicAuthMiddleware(cfg.Auth.AdminLogin, cfg.Auth.AdminPassword)

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/registration", authHandler.Registration)
	authGroup.Post("/registration-confirmation", authHandler.ConfirmRegistration)
	authGroup.Post("/registration-email-resending", authHandler.ResendConfirmation)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh-token", authHandler.RefreshToken)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", bearer, authHandler.Me)

	// Device sessions, authenticated by the refresh cookie
	securityGroup := api.Group("/security", refreshGuard)
	securityGroup.Get("/devices", securityHandler.ListDevices)
	securityGroup.Delete("/devices", securityHandler.TerminateOthers)
	securityGroup.Delete("/devices/:deviceId", securityHandler.TerminateDevice)

	// Super-admin user management, behind basic auth
	saGroup := api.Group("/sa/users", basicAuth)
	saGroup.Get("/", userHandler.List)
	saGroup.Get("/:id", userHandler.Get)
	saGroup.Post("/", userHandler.Create)
	saGroup.Delete("/:id", userHandler.Delete)

	// Blog routes
	blogGroup := api.Group("/blogs")
	blogGroup.Get("/", blogHandler.List)
	blogGroup.Get("/:id", blogHandler.Get)
	blogGroup.Post("/", bearer, blogHandler.Create)
	blogGroup.Put("/:id", bearer, blogHandler.Update)
	blogGroup.Delete("/:id", bearer, blogHandler.Delete)
	blogGroup.Get("/:blogId/posts", optionalBearer, postHandler.ListByBlog)
	blogGroup.Post("/:blogId/posts", bearer, postHandler.CreateForBlog)
	blogGroup.Put("/:blogId/posts/:postId", bearer, postHandler.UpdateForBlog)
	blogGroup.Delete("/:blogId/posts/:postId", bearer, postHandler.Delete)

	// Post routes
	postGroup := api.Group("/posts")
	postGroup.Get("/", optionalBearer, postHandler.List)
	postGroup.Get("/:id", optionalBearer, postHandler.Get)
	postGroup.Post("/", bearer, postHandler.Create)
	postGroup.Put("/:id", bearer, postHandler.Update)
	postGroup.Delete("/:id", bearer, postHandler.DeleteByID)
	postGroup.Put("/:id/like-status", bearer, postHandler.SetLikeStatus)
	postGroup.Get("/:postId/comments", optionalBearer, commentHandler.ListByPost)
	postGroup.Post("/:postId/comments", bearer, commentHandler.Create)

	// Comment routes
	commentGroup := api.Group("/comments")
	commentGroup.Get("/:id", optionalBearer, commentHandler.Get)
	commentGroup.Put("/:id", bearer, commentHandler.Update)
	commentGroup.Delete("/:id", bearer, commentHandler.Delete)
	commentGroup.Put("/:id/like-status", bearer, commentHandler.SetLikeStatus)
}
