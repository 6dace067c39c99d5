package app

import (
	"bible_trivia_backend/internal/config"
	"bible_trivia_backend/internal/middleware"
	"bible_trivia_backend/pkg/monitoring"
	"bible_trivia_backend/pkg/security"

	"github.com/gin-gonic/gin"
)

func registerRoutes(router *gin.Engine, c *controllers, s *Services, cfg *config.Config) {
	router.GET("/health", c.health.HealthCheck)
	router.GET("/metrics", monitoring.PrometheusHandler())

	auth := middleware.AuthMiddleware(&cfg.JWT, s.Auth)
	optional := middleware.OptionalAuth(&cfg.JWT)
	credentials := security.RateLimiter(security.Limit{
		Scope:       "auth",
		MaxRequests: cfg.RateLimit.AuthMaxRequests,
		Window:      cfg.RateLimit.Window(),
	})
	submissions := security.RateLimiter(security.Limit{
		Scope:       "submit",
		MaxRequests: cfg.RateLimit.SubmitMaxRequests,
		Window:      cfg.RateLimit.Window(),
		Key:         middleware.ByUser,
	})

	// 1. public routes
	users := router.Group("/users")
	{
		users.POST("/register", credentials, c.auth.Register)
		users.POST("/login", credentials, c.auth.Login)
		users.POST("/logout", c.auth.Logout)
		users.GET("/me", auth, c.auth.Me)
		users.PUT("/:id/role", auth, c.user.UpdateRole)
	}

	leaderboard := router.Group("/leaderboard", optional)
	{
		leaderboard.GET("/global", c.leaderboard.Global)
		leaderboard.GET("/section/:id", c.leaderboard.Section)
	}

	bible := router.Group("/bible")
	{
		bible.GET("", c.bible.List)
		bible.GET("/books", c.bible.Books)
		bible.GET("/lookup", c.bible.Lookup)
		bible.GET("/:id", c.bible.Get)

		// writes check the admin role in each handler
		bible.POST("", auth, c.bible.Create)
		bible.POST("/batch", auth, c.bible.CreateBatch)
		bible.PUT("/:id", auth, c.bible.Update)
		bible.DELETE("/:id", auth, c.bible.Delete)
	}

	// 2. authenticated routes
	sections := router.Group("/sections", auth)
	{
		sections.GET("", c.section.ListSections)
		sections.POST("", c.section.CreateSection)
		sections.GET("/:id", c.section.GetSection)
		sections.POST("/:id/complete", c.section.CompleteSection)
		sections.GET("/:id/completions", c.section.ListCompletions)
	}

	questions := router.Group("/questions", auth)
	{
		questions.GET("", c.question.ListAll)
		questions.POST("", c.question.CreateQuestion)
		questions.POST("/batch", c.question.CreateBatch)
		questions.GET("/section/:id", c.question.ListBySection)
		questions.GET("/:id", c.question.GetQuestion)
	}

	progress := router.Group("/progress", auth)
	{
		progress.POST("", c.progress.Create)
		progress.POST("/submit", submissions, c.progress.Submit)
		progress.GET("/my-progress", c.progress.MyProgress)
		progress.GET("/section/:id/performance", c.progress.SectionPerformance)
	}

	scores := router.Group("/scores", auth)
	{
		scores.POST("", submissions, c.score.CreateScore)
		scores.GET("/my-scores", c.score.MyScores)
		scores.GET("/attempts", c.score.Attempts)
		scores.GET("/section/:id", c.score.SectionScores)
	}
}
