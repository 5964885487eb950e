// Package httpapi exposes the catalog and collection services as a JSON
// admin API on gin.
package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/catalog"
	"github.com/fotiotech/novaorizon-seller-sub000/internal/collection"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "novaorizon_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "novaorizon_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Handler serves the admin API.
type Handler struct {
	catalog     *catalog.Service
	collections *collection.Service
	logger      *zap.Logger
}

// NewHandler creates a handler over the two services.
func NewHandler(cat *catalog.Service, collections *collection.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{catalog: cat, collections: collections, logger: logger}
}

// NewRouter registers every route on a fresh gin engine.
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), observe(h.logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		categories := api.Group("/categories")
		{
			categories.GET("", h.listCategories)
			categories.POST("", h.createCategory)
			categories.GET("/:id", h.getCategory)
			categories.PUT("/:id/parent", h.moveCategory)
			categories.GET("/:id/attributes", h.effectiveAttributes)
			categories.PUT("/:id/attributes", h.replaceCategoryAttributes)
			categories.GET("/:id/attribute-groups", h.categoryGroupTree)
			categories.GET("/:id/page", h.categoryPage)
		}

		api.POST("/units", h.createUnit)

		attributes := api.Group("/attributes")
		{
			attributes.GET("", h.listAttributes)
			attributes.POST("", h.createAttribute)
			attributes.DELETE("/:id", h.deleteAttribute)
		}

		groups := api.Group("/attribute-groups")
		{
			groups.GET("", h.listAttributeGroups)
			groups.POST("", h.createAttributeGroup)
			groups.POST("/tree", h.groupTreeForAttributes)
			groups.PUT("/:id/attributes", h.replaceGroupAttributes)
		}

		collections := api.Group("/collections")
		{
			collections.GET("", h.listCollections)
			collections.POST("", h.createCollection)
			collections.POST("/preview", h.previewRules)
			collections.GET("/:id", h.getCollection)
			collections.PUT("/:id", h.updateCollection)
			collections.DELETE("/:id", h.deleteCollection)
			collections.GET("/:id/products", h.collectionProducts)
		}

		api.POST("/products", h.createProduct)
	}

	return r
}

// observe logs each request and records it in prometheus under its route
// template, not the raw path.
func observe(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		code := c.Writer.Status()
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(code)).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(elapsed.Seconds())

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", code),
			zap.Duration("duration", elapsed),
		}
		if code >= http.StatusInternalServerError {
			logger.Warn("http request failed", fields...)
		} else {
			logger.Debug("http request", fields...)
		}
	}
}
