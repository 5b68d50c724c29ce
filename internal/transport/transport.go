package transport

import (
	"net/http"
	"time"

	"github.com/ds124wfegd/visionpipe/internal/transport/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func InitRoutes(resultHandler *ResultHandler, gatherer prometheus.Gatherer, requestTimeout time.Duration) *gin.Engine {

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(requestTimeout))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	router.GET("/results/:id", resultHandler.GetResult)

	return router
}
