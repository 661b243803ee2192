package http

import (
	"github.com/FernandoNarvaez1904/ecommerce-expo/internal/adapter/http/middleware"
	"github.com/FernandoNarvaez1904/ecommerce-expo/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(oh *OrderHandler, ih *ItemHandler, th *TokenHandler, authz *middleware.Authz) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/v1/token", th.IssueToken)

	v1 := r.Group("/v1")
	{
		// catalog reads are public; everything else needs a caller
		v1.GET("/items", ih.ListItems)
		v1.GET("/items/:id", ih.GetItem)

		authed := v1.Group("", authz.Authenticate())
		{
			authed.POST("/items", ih.CreateItem)
			authed.PATCH("/items/:id", ih.UpdateItem)

			authed.POST("/orders", oh.CreateOrder)
			authed.GET("/orders", oh.ListMyOrders)
			authed.POST("/orders/:id/cancel", oh.CancelOrder)
			authed.POST("/orders/:id/complete", oh.CompleteOrder)
		}
	}

	return r
}
