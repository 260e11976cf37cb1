package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rohitprj/QuoteVault/config"
	"github.com/Rohitprj/QuoteVault/internal/collection"
	"github.com/Rohitprj/QuoteVault/internal/favorite"
	"github.com/Rohitprj/QuoteVault/internal/middleware"
	"github.com/Rohitprj/QuoteVault/internal/models"
	"github.com/Rohitprj/QuoteVault/internal/quote"
	"github.com/Rohitprj/QuoteVault/internal/settings"
	"github.com/Rohitprj/QuoteVault/internal/svc"
	"github.com/Rohitprj/QuoteVault/internal/user"
	"github.com/Rohitprj/QuoteVault/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	utils.InitLogger(cfg.AppEnv)
	defer zap.L().Sync() //nolint:errcheck

	ctx := svc.NewServiceContext(cfg)
	defer ctx.Close()

	err = ctx.DB.AutoMigrate(
		&models.User{},
		&models.Quote{},
		&models.Favorite{},
		&models.Collection{},
		&models.CollectionQuote{},
		&models.Profile{},
	)
	if err != nil {
		zap.L().Fatal("failed to migrate database", zap.Error(err))
	}

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.LoggerMiddleware())

	userHandler := user.NewHandler(ctx)
	quoteHandler := quote.NewHandler(ctx)
	favoriteHandler := favorite.NewHandler(ctx)
	collectionHandler := collection.NewHandler(ctx)
	settingsHandler := settings.NewHandler(ctx)

	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)

	// Browsing needs no account; everything user-scoped sits behind JWT.
	r.GET("/quotes", quoteHandler.GetQuotes)
	r.GET("/quotes/search", quoteHandler.SearchQuotes)
	r.GET("/quotes/daily", quoteHandler.QuoteOfTheDay)
	r.GET("/quotes/categories", quoteHandler.GetCategories)
	r.GET("/quotes/:id", quoteHandler.GetQuote)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware(cfg, ctx.Cache))
	{
		users := auth.Group("/users")
		{
			users.POST("/logout", userHandler.Logout)
			users.POST("/change-password", userHandler.ChangePassword)

			users.GET("/me", settingsHandler.GetMe)
			users.PUT("/me", settingsHandler.UpdateMe)
			users.POST("/me/avatar",
				middleware.RateLimitMiddleware(ctx.Cache, "avatar", 5, time.Minute),
				settingsHandler.UploadAvatar)
		}

		auth.POST("/quotes/:id/favorite", favoriteHandler.Toggle)
		auth.GET("/quotes/:id/favorite", favoriteHandler.Status)

		favorites := auth.Group("/favorites")
		{
			favorites.GET("", favoriteHandler.List)
			favorites.GET("/ids", favoriteHandler.IDs)
			favorites.GET("/count", favoriteHandler.Count)
		}

		collections := auth.Group("/collections")
		{
			collections.GET("", collectionHandler.List)
			collections.POST("",
				middleware.RateLimitMiddleware(ctx.Cache, "collection-create", 30, time.Minute),
				collectionHandler.Create)
			collections.GET("/:id", collectionHandler.Get)
			collections.PUT("/:id", collectionHandler.Rename)
			collections.DELETE("/:id", collectionHandler.Delete)
			collections.POST("/:id/quotes", collectionHandler.AddQuote)
			collections.DELETE("/:id/quotes/:quoteId", collectionHandler.RemoveQuote)
			collections.GET("/:id/contains", collectionHandler.Contains)
		}

		st := auth.Group("/settings")
		{
			st.GET("", settingsHandler.GetSettings)
			st.PATCH("", settingsHandler.UpdateSettings)
			st.POST("/sync", settingsHandler.SyncSettings)
		}
	}

	addr := ":" + cfg.ServerPort
	zap.L().Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		zap.L().Fatal("server exited", zap.Error(err))
	}
}
