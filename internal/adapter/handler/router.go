package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/voicenote/pkg/config"
	pkgMiddleware "github.com/johnquangdev/voicenote/pkg/middleware"
)

// multipartHeadroom covers form boundaries and part headers around an upload
// of the maximum size.
const multipartHeadroom = 64 << 10

// Router holds all handlers
type Router struct {
	cfg              *config.Config
	authHandler      *Auth
	voiceNoteHandler *VoiceNote
	authMiddleware   echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, authHandler *Auth, voiceNoteHandler *VoiceNote, authMiddleware echo.MiddlewareFunc) *Router {
	return &Router{
		cfg:              cfg,
		authHandler:      authHandler,
		voiceNoteHandler: voiceNoteHandler,
		authMiddleware:   authMiddleware,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API docs
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group. Bodies are capped before anything is buffered.
	v1 := e.Group("/v1", middleware.BodyLimit(rt.bodyLimit()))

	// Setup route groups
	rt.setupAuthRoutes(v1)
	rt.setupVoiceNoteRoutes(v1)
}

// setupAuthRoutes configures authentication routes
func (rt *Router) setupAuthRoutes(g *echo.Group) {
	authGroup := g.Group("/auth")

	authGroup.POST("/register", rt.authHandler.Register)
	authGroup.POST("/login", rt.authHandler.Login)
	authGroup.POST("/refresh", rt.authHandler.RefreshToken)
	authGroup.POST("/logout", rt.authHandler.Logout)
	authGroup.POST("/password/forgot", rt.authHandler.ForgotPassword)
	authGroup.POST("/password/reset", rt.authHandler.ResetPassword)
	authGroup.GET("/me", rt.authHandler.Me, rt.authMiddleware)
}

// setupVoiceNoteRoutes configures analysis and voice note routes
func (rt *Router) setupVoiceNoteRoutes(g *echo.Group) {
	g.POST("/analyze", rt.voiceNoteHandler.Analyze)

	notes := g.Group("/voice-notes", rt.authMiddleware)
	notes.POST("", rt.voiceNoteHandler.SubmitAudio)
	notes.POST("/text", rt.voiceNoteHandler.SubmitText)
	notes.GET("", rt.voiceNoteHandler.List)

	byID := pkgMiddleware.RequireUUIDParam("id", VoiceNoteIDKey)
	notes.GET("/:id", rt.voiceNoteHandler.Get, byID)
	notes.GET("/:id/chart", rt.voiceNoteHandler.Chart, byID)

	g.GET("/media/*", rt.voiceNoteHandler.Media, rt.authMiddleware)
}

// bodyLimit renders the largest accepted request body in BodyLimit notation
func (rt *Router) bodyLimit() string {
	return fmt.Sprintf("%dK", (rt.cfg.Server.MaxUploadBytes+multipartHeadroom+1023)/1024)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
