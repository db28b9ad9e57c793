package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/accident_hotspots/internal/metrics"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Публичные запросы к датасету
	api.GET("/accidents", h.getAccidents)
	api.GET("/hotspots", h.getHotspots)

	dataset := api.Group("/dataset")
	{
		dataset.GET("/stats", h.getDatasetStats)
		dataset.POST("/reset", APIKeyAuthMiddleware(h.cfg, h.logger), h.resetDataset)
	}

	// История маршрутов пользователя
	routes := api.Group("/routes", APIKeyAuthMiddleware(h.cfg, h.logger), UserIDMiddleware())
	{
		routes.GET("", h.listRoutes)
		routes.POST("", h.saveRoute)
		routes.DELETE("/:id", h.deleteRoute)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}

// MetricsMiddleware считает запросы по шаблону маршрута и статусу ответа
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
