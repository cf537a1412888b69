// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"cardlink/internal/delivery/http/middleware"
	"cardlink/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	CardHandler         *handler.CardHandler
	ScanHandler         *handler.ScanHandler
	ContactHandler      *handler.ContactHandler
	UploadHandler       *handler.UploadHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler         *handler.UserHandler
	cardHandler         *handler.CardHandler
	scanHandler         *handler.ScanHandler
	contactHandler      *handler.ContactHandler
	uploadHandler       *handler.UploadHandler
	authMiddleware      *middleware.AuthMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:         params.UserHandler,
		cardHandler:         params.CardHandler,
		scanHandler:         params.ScanHandler,
		contactHandler:      params.ContactHandler,
		uploadHandler:       params.UploadHandler,
		authMiddleware:      params.AuthMiddleware,
		rateLimitMiddleware: params.RateLimitMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
	}

	// User routes that require authentication
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/me", r.userHandler.Me)
	}

	// Card management routes, owner only
	cardGroup := e.Group("/cards")
	cardGroup.Use(r.authMiddleware.Authenticate)
	{
		cardGroup.POST("/create", r.cardHandler.Create)
		cardGroup.GET("/all", r.cardHandler.List)
		cardGroup.PUT("/update/:id", r.cardHandler.Update)
		cardGroup.DELETE("/delete/:id", r.cardHandler.Delete)
	}

	// Public card view, no authentication
	e.GET("/public-card/:cardId", r.scanHandler.GetPublicCard)

	// Scan recording is public but rate limited per client IP; the history
	// stays owner only.
	e.POST("/scan/:cardId", r.scanHandler.RecordScan, r.rateLimitMiddleware.LimitScans)
	scanGroup := e.Group("/scan")
	scanGroup.Use(r.authMiddleware.Authenticate)
	{
		scanGroup.GET("/card/:cardId", r.scanHandler.ListScans)
	}

	// Contact directory routes
	contactGroup := e.Group("/contacts")
	contactGroup.Use(r.authMiddleware.Authenticate)
	{
		contactGroup.POST("/save/:cardId", r.contactHandler.Save)
		contactGroup.POST("/create", r.contactHandler.Create)
		contactGroup.GET("/all", r.contactHandler.List)
		contactGroup.PUT("/update/:contactId", r.contactHandler.Update)
		contactGroup.DELETE("/delete/:contactId", r.contactHandler.Delete)
		contactGroup.POST("/visitor/share-contact", r.contactHandler.Share)
	}

	// Image uploads
	uploadGroup := e.Group("/upload")
	uploadGroup.Use(r.authMiddleware.Authenticate)
	{
		uploadGroup.POST("/image", r.uploadHandler.UploadImage)
	}
}
