package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/accident_hotspots/internal/config"
	"github.com/shenikar/accident_hotspots/internal/service"
	"github.com/sirupsen/logrus"
)

const (
	geoJSONContentType = "application/json; charset=utf-8"
	cacheHeader        = "X-Cache"
)

type Handler struct {
	accidentService service.AccidentService
	routeService    service.RouteHistoryService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(
	accidentService service.AccidentService,
	routeService service.RouteHistoryService,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		accidentService: accidentService,
		routeService:    routeService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// @Summary Get accidents in bbox
// @Description Returns accident points inside the bounding box as a GeoJSON FeatureCollection, in dataset order.
// @Tags Accidents
// @Produce json
// @Param bbox query string true "minLon,minLat,maxLon,maxLat"
// @Param from query string false "Start date, YYYY-MM-DD"
// @Param to query string false "End date, YYYY-MM-DD, inclusive"
// @Param days query int false "Last N days, used when from is empty"
// @Param limit query int false "Maximum number of features"
// @Success 200 {object} map[string]interface{} "GeoJSON FeatureCollection"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 503 {object} map[string]string "Dataset unavailable"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /accidents [get]
func (h *Handler) getAccidents(c *gin.Context) {
	var input AccidentsQuery
	log := h.logger.WithField("method", "getAccidents")

	if err := c.ShouldBindQuery(&input); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query, err := AccidentsQueryToService(input)
	if err != nil {
		log.WithError(err).Warn("Invalid query parameters")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.accidentService.GetAccidents(c.Request.Context(), query)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	h.respondGeoJSON(c, result)
}

// @Summary Get accident hotspots
// @Description Aggregates accidents into a metric grid and returns cells classified by risk level.
// @Tags Accidents
// @Produce json
// @Param bbox query string true "minLon,minLat,maxLon,maxLat"
// @Param period query string false "<N>d or all" default(30d)
// @Param threshold query int false "Minimum accidents per cell"
// @Param grid query int false "Cell size in meters"
// @Param shape query string false "point or polygon" default(point)
// @Success 200 {object} map[string]interface{} "GeoJSON FeatureCollection"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 503 {object} map[string]string "Dataset unavailable"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /hotspots [get]
func (h *Handler) getHotspots(c *gin.Context) {
	var input HotspotsQuery
	log := h.logger.WithField("method", "getHotspots")

	if err := c.ShouldBindQuery(&input); err != nil {
		log.WithError(err).Warn("Failed to bind query")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query, err := HotspotsQueryToService(input)
	if err != nil {
		log.WithError(err).Warn("Invalid query parameters")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.accidentService.GetHotspots(c.Request.Context(), query)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	h.respondGeoJSON(c, result)
}

// @Summary Get dataset statistics
// @Description Returns statistics of the last dataset load without reading the file.
// @Tags Dataset
// @Produce json
// @Success 200 {object} DatasetStatsResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /dataset/stats [get]
func (h *Handler) getDatasetStats(c *gin.Context) {
	log := h.logger.WithField("method", "getDatasetStats")

	stats, err := h.accidentService.DatasetStats(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, StatsToResponse(stats))
}

// @Summary Reset dataset
// @Description Drops the loaded dataset and cached responses on every instance. Requires API key.
// @Tags Dataset
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body ResetDatasetRequest false "Reset reason"
// @Success 202 "Accepted"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /dataset/reset [post]
func (h *Handler) resetDataset(c *gin.Context) {
	var input ResetDatasetRequest
	log := h.logger.WithField("method", "resetDataset")

	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			log.WithError(err).Warn("Failed to bind JSON")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Reason == "" {
		input.Reason = "manual"
	}

	if err := h.accidentService.ResetDataset(c.Request.Context(), input.Reason); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// @Summary List saved routes
// @Description Returns the most recent routes of the user. Requires API key and X-User-ID.
// @Tags Routes
// @Produce json
// @Security ApiKeyAuth
// @Param X-User-ID header string true "User ID"
// @Param limit query int false "Maximum number of routes"
// @Success 200 {array} RouteResponse
// @Failure 400 {object} map[string]string "Invalid limit"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Route history disabled"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /routes [get]
func (h *Handler) listRoutes(c *gin.Context) {
	userID := c.GetString(userIDKey)
	log := h.logger.WithField("method", "listRoutes").WithField("user_id", userID)

	var limit *int
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = &n
	}

	routes, err := h.routeService.ListRoutes(c.Request.Context(), userID, limit)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToRouteResponses(routes))
}

// @Summary Save a route
// @Description Saves a route; repeating an existing route moves it to the top. Requires API key and X-User-ID.
// @Tags Routes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param X-User-ID header string true "User ID"
// @Param route body SaveRouteRequest true "Route"
// @Success 201 {object} RouteResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Route history disabled"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /routes [post]
func (h *Handler) saveRoute(c *gin.Context) {
	var input SaveRouteRequest
	userID := c.GetString(userIDKey)
	log := h.logger.WithField("method", "saveRoute").WithField("user_id", userID)

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToRouteModel(userID, input)
	if err := h.routeService.SaveRoute(c.Request.Context(), model); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToRouteResponse(model))
}

// @Summary Delete a route
// @Description Deletes a saved route of the user. Requires API key and X-User-ID.
// @Tags Routes
// @Produce json
// @Security ApiKeyAuth
// @Param X-User-ID header string true "User ID"
// @Param id path string true "Route ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid route ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Route not found"
// @Failure 503 {object} map[string]string "Route history disabled"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /routes/{id} [delete]
func (h *Handler) deleteRoute(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid route ID"})
		return
	}
	userID := c.GetString(userIDKey)
	log := h.logger.WithField("method", "deleteRoute").WithField("id", id).WithField("user_id", userID)

	if err := h.routeService.DeleteRoute(c.Request.Context(), userID, id); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) respondGeoJSON(c *gin.Context, result *service.QueryResult) {
	if result.CacheHit {
		c.Header(cacheHeader, "HIT")
	} else {
		c.Header(cacheHeader, "MISS")
	}
	c.Data(http.StatusOK, geoJSONContentType, result.Body)
}

// respondError переводит ошибку сервиса в HTTP-статус
func (h *Handler) respondError(c *gin.Context, log *logrus.Entry, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, service.ErrRouteNotFound):
		log.WithError(err).Warn("Route not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	case errors.Is(err, service.ErrRouteHistoryDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "route history is disabled"})
	case service.IsDatasetUnavailable(err):
		log.WithError(err).Error("Dataset unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "dataset unavailable"})
	default:
		log.WithError(err).Error("Request failed in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
