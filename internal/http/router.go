package api

import (
	stdhttp "net/http"

	h "catalog/internal/http/handlers"
	"catalog/internal/http/middleware"
	"catalog/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps carries everything the route table needs; nothing is ambient.
type Deps struct {
	Log      *zap.Logger
	Limiter  services.RateLimiter
	Products h.ProductHandler
	Webhook  h.WebhookHandler
	External h.ExternalHandler
	DBCheck  gin.HandlerFunc

	CORSOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		gin.Recovery(),
		middleware.CORS(d.CORSOrigins),
		middleware.RateLimit(d.Limiter, d.Log),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		d.Log.Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/health", h.Health)
	if d.DBCheck != nil {
		r.GET("/db-check", d.DBCheck)
	}

	products := r.Group("/products")
	{
		products.GET("", d.Products.List)
		products.GET("/export.pdf", d.Products.ExportPriceList)
	}

	api := r.Group("/api")
	{
		api.POST("/webhook", d.Webhook.Receive)
		api.GET("/external-a", d.External.Fetch)
	}

	return r
}
