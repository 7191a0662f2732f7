package config

import (
	"hotelsite/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// InitApp builds the gin engine with the global middleware chain.
func InitApp(cfg *Config, log zerolog.Logger) *gin.Engine {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization", "X-Request-ID")
	configCors.AddExposeHeaders("X-Request-ID", "Content-Disposition")
	configCors.AllowCredentials = true
	if len(cfg.Server.AllowedOrigins) > 0 {
		configCors.AllowOrigins = cfg.Server.AllowedOrigins
	} else {
		configCors.AllowOriginFunc = func(origin string) bool {
			return true
		}
	}

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		gin.Recovery(),
		cors.New(configCors),
	)
	_ = router.SetTrustedProxies(nil)
	return router
}
