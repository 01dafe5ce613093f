package api

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"time"

	"messenger/internal/auth"
	"messenger/internal/httpx"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Pinger is a dependency the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	Verifier      *auth.Verifier
	OriginPattern *regexp.Regexp
	// Each entry is pinged by /health/ready.
	ReadinessChecks map[string]Pinger
}

func NewRouter(handler *Handler, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), httpx.RequestID())
	if cfg.OriginPattern != nil {
		r.Use(corsForMatchingOrigins(cfg.OriginPattern, cors.New(cors.Config{
			AllowOriginFunc:  cfg.OriginPattern.MatchString,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization", httpx.RequestIDHeader},
			ExposeHeaders:    []string{httpx.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           10 * time.Minute,
		})))
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	health := r.Group("/health")
	{
		health.GET("/live", Liveness)
		health.GET("/ready", Readiness(cfg.ReadinessChecks))
	}

	v1 := r.Group("/v1", auth.Required(cfg.Verifier))
	{
		v1.GET("/messages", handler.ListMessages)
		v1.POST("/messages", handler.SendMessage)
		v1.GET("/messages/:msg_id", handler.GetMessage)
		v1.DELETE("/messages/:msg_id", handler.DeleteMessage)
		v1.GET("/messages/:msg_id/read", handler.GetReadStatus)
		v1.POST("/messages/:msg_id/read", handler.MarkRead)
		v1.POST("/messages/:msg_id/unread", handler.MarkUnread)
	}
	return r
}

// corsForMatchingOrigins applies handler only to requests whose Origin
// matches pattern. Other requests are served without CORS headers rather
// than rejected, leaving enforcement to the browser.
func corsForMatchingOrigins(pattern *regexp.Regexp, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" && !pattern.MatchString(origin) {
			c.Next()
			return
		}
		handler(c)
	}
}

// Liveness godoc
// @Summary Liveness probe
// @Tags    health
// @Produce json
// @Success 200 {string} string "OK"
// @Router  /health/live [get]
func Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, "OK")
}

// Readiness godoc
// @Summary Readiness probe; pings the store and optional brokers
// @Tags    health
// @Produce json
// @Success 200 {string} string "OK"
// @Failure 503 {object} httpx.ErrorResponse
// @Router  /health/ready [get]
func Readiness(checks map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		for name, check := range checks {
			if err := check.Ping(ctx); err != nil {
				log.Printf("Readiness check %s failed: %v", name, err)
				httpx.Abort(c, http.StatusServiceUnavailable, name+" is not reachable")
				return
			}
		}
		c.JSON(http.StatusOK, "OK")
	}
}
