package v1

import (
	"github.com/shenikar/accident_hotspots/internal/models"
	"github.com/shenikar/accident_hotspots/internal/service"
)

// AccidentsQueryToService преобразует параметры запроса в запрос сервиса
func AccidentsQueryToService(q AccidentsQuery) (service.AccidentQuery, error) {
	bbox, err := ParseBBox(q.BBox)
	if err != nil {
		return service.AccidentQuery{}, err
	}
	from, err := parseDate(q.From)
	if err != nil {
		return service.AccidentQuery{}, err
	}
	to, err := parseDate(q.To)
	if err != nil {
		return service.AccidentQuery{}, err
	}

	return service.AccidentQuery{
		BBox:  bbox,
		From:  from,
		To:    to,
		Days:  q.Days,
		Limit: q.Limit,
	}, nil
}

// HotspotsQueryToService преобразует параметры запроса в запрос сервиса
func HotspotsQueryToService(q HotspotsQuery) (service.HotspotQuery, error) {
	bbox, err := ParseBBox(q.BBox)
	if err != nil {
		return service.HotspotQuery{}, err
	}

	return service.HotspotQuery{
		BBox:       bbox,
		Period:     q.Period,
		Threshold:  q.Threshold,
		GridMeters: q.Grid,
		Shape:      q.Shape,
	}, nil
}

// DTOToRouteModel преобразует DTO сохранения маршрута в доменную модель
func DTOToRouteModel(userID string, dto SaveRouteRequest) *models.RouteHistory {
	return &models.RouteHistory{
		UserID:      userID,
		FromAddress: dto.FromAddress,
		ToAddress:   dto.ToAddress,
	}
}

// ModelToRouteResponse преобразует доменную модель в DTO для ответа
func ModelToRouteResponse(model *models.RouteHistory) *RouteResponse {
	return &RouteResponse{
		ID:          model.ID,
		FromAddress: model.FromAddress,
		ToAddress:   model.ToAddress,
		CreatedAt:   model.CreatedAt,
	}
}

// ModelsToRouteResponses преобразует слайс моделей в слайс DTO
func ModelsToRouteResponses(routes []*models.RouteHistory) []*RouteResponse {
	responses := make([]*RouteResponse, len(routes))
	for i, route := range routes {
		responses[i] = ModelToRouteResponse(route)
	}
	return responses
}

// StatsToResponse преобразует статистику датасета в DTO
func StatsToResponse(stats *service.DatasetStats) DatasetStatsResponse {
	resp := DatasetStatsResponse{
		Loaded:         stats.Loaded,
		Accepted:       stats.Accepted,
		Rejected:       stats.Rejected,
		Lines:          stats.Lines,
		ElapsedSeconds: stats.Elapsed.Seconds(),
	}
	if stats.Loaded {
		loadedAt := stats.LoadedAt
		resp.LoadedAt = &loadedAt
	}
	return resp
}
