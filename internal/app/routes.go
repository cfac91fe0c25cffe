package app

import (
	"github.com/MrTochi/focus-backend/internal/auth"
	"github.com/MrTochi/focus-backend/internal/cache"
	"github.com/MrTochi/focus-backend/internal/config"
	"github.com/MrTochi/focus-backend/internal/handlers"
	"github.com/MrTochi/focus-backend/internal/mail"
	"github.com/MrTochi/focus-backend/internal/repo"
	"github.com/MrTochi/focus-backend/internal/scheduler"
	"github.com/MrTochi/focus-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine and builds the reminder
// scan loop sharing the same stores and mailer.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) *scheduler.Reminder {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	mailer := mail.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User,
		cfg.SMTP.Password, cfg.SMTP.From, cfg.SMTP.FromName)
	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL.Duration())

	userRepo := repo.NewPGUserRepo(db)
	notificationRepo := repo.NewPGNotificationRepo(db)
	todoRepo := repo.NewPGTodoRepo(db)

	api := r.Group("/api")

	userSvc := service.NewUserService(userRepo, notificationRepo, mailer, cfg.App.FrontendURL)
	authHandler := handlers.NewAuthHandler(userSvc, tokens, cfg.Auth.SessionTTL.Duration())
	registerAuthRoutes(api, authHandler, tokens)

	todoCache := cache.NewTodoCache(rdb, cfg.Redis.DefaultTTL.Duration())
	todoSvc := service.NewTodoService(todoRepo, todoCache)
	todoHandler := handlers.NewTodoHandler(todoSvc)
	registerTodoRoutes(api, todoHandler, tokens)

	return scheduler.New(todoRepo, mailer, cfg.Reminder.Interval.Duration())
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Focus Pad API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler, tokens *auth.Tokens) {
	g := api.Group("/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
	g.POST("/forgot-password", h.ForgotPassword)
	g.POST("/verify-email/:token", h.VerifyEmail)
	g.POST("/reset-password/:token", h.ResetPassword)

	protected := g.Group("", auth.RequireSession(tokens))
	protected.GET("/get-user", h.GetUser)
	protected.GET("/get-users", h.GetUsers)
	protected.POST("/update-user", h.UpdateUser)
	protected.DELETE("/delete-user/:id", h.DeleteUser)
}

func registerTodoRoutes(api *gin.RouterGroup, h *handlers.TodoHandler, tokens *auth.Tokens) {
	g := api.Group("/todos", auth.RequireSession(tokens))
	g.POST("/create-todo", h.Create)
	g.GET("/get-todos", h.List)
	g.GET("/get-todo/:id", h.GetByID)
	g.PUT("/edit-todo/:id", h.Edit)
	g.POST("/complete-todo/:id", h.Toggle)
	g.DELETE("/delete-todo/:id", h.Delete)
}
