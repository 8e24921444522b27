package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shiftgy-backend/internal/config"
	"shiftgy-backend/internal/handlers"
	"shiftgy-backend/internal/middleware"
	"shiftgy-backend/internal/presence"
)

func Register(router *gin.Engine, resolver *presence.Resolver, cfg config.Config) {
	router.Use(corsMiddleware(cfg.AllowedOriginsRaw))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "shiftgy-presence-backend"})
	})

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	identityHandler := handlers.NewIdentityHandler(cfg)
	presenceHandler := handlers.NewPresenceHandler(resolver)
	settingsHandler := handlers.NewPresenceSettingsHandler(resolver)

	api := router.Group("/api")
	{
		api.POST("/auth/token", identityHandler.Token)
	}

	protected := api.Group("/presence")
	protected.Use(middleware.IdentityRequired(cfg.JwtSecret))
	{
		protected.POST("/clock-in", presenceHandler.ClockIn)
		protected.POST("/clock-out", presenceHandler.ClockOut)
		protected.GET("/current/:employeeId", presenceHandler.Current)
		protected.GET("/logs", presenceHandler.List)

		protected.GET("/settings", settingsHandler.GetSettings)
		protected.PUT("/settings", settingsHandler.UpdateSettings)

		protected.GET("/employees/:employeeId/config", settingsHandler.GetEmployeeConfig)
		protected.PUT("/employees/:employeeId/config", settingsHandler.UpsertEmployeeConfig)
		protected.GET("/employees/:employeeId/enabled", presenceHandler.Enabled)
	}
}

func corsMiddleware(allowed string) gin.HandlerFunc {
	origins := []string{}
	for _, origin := range strings.Split(allowed, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	allowAll := len(origins) == 0

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowedOrigin := range origins {
				if origin == allowedOrigin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					c.Writer.Header().Set("Vary", "Origin")
					break
				}
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
