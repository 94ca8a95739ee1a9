package server

import (
	"dlin210/account-portal/internal/api/controller"
	"dlin210/account-portal/internal/config"
	"dlin210/account-portal/internal/limiter"
	"dlin210/account-portal/internal/session"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Server assembles the gin engine: middleware, templates, and routes.
type Server struct {
	engine *gin.Engine
}

// New builds the portal's HTTP surface. The login limiter may be nil, in
// which case login attempts are not throttled.
func New(cfg *config.Config, uc *controller.UserController, store sessions.Store, loginLimiter *limiter.LoginLimiter) *Server {
	gin.SetMode(cfg.GinMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestID())
	engine.Use(AccessLog())
	engine.Use(sessions.Sessions(cfg.SessionName, store))

	engine.LoadHTMLGlob(cfg.TemplateGlob)

	registerRoutes(engine, uc, loginLimiter)

	return &Server{engine: engine}
}

// Engine exposes the underlying gin engine for http.Server wiring and tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func registerRoutes(engine *gin.Engine, uc *controller.UserController, loginLimiter *limiter.LoginLimiter) {
	engine.GET("/health", handleHealth)
	engine.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, session.LoginPath)
	})

	users := engine.Group("/users")
	{
		users.GET("/register", uc.ShowRegister)
		users.POST("/register", uc.Register)
		users.GET("/login", uc.ShowLogin)
		users.POST("/login", RateLimitLogin(loginLimiter), uc.Login)
		users.GET("/logout", uc.Logout)
	}

	app := engine.Group("/app")
	app.Use(session.RequireLogin())
	{
		app.GET("/dashboard", uc.Dashboard)
	}
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "account-portal",
	})
}
