package v1

import (
	"time"

	"github.com/google/uuid"
)

// AccidentsQuery параметры запроса точек ДТП
// @Description Параметры запроса точек ДТП
type AccidentsQuery struct {
	BBox  string `form:"bbox" validate:"required"`
	From  string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To    string `form:"to" validate:"omitempty,datetime=2006-01-02"`
	Days  *int   `form:"days" validate:"omitempty,min=0,max=36500"`
	Limit *int   `form:"limit"`
}

// HotspotsQuery параметры запроса очагов аварийности
// @Description Параметры запроса очагов аварийности
type HotspotsQuery struct {
	BBox      string `form:"bbox" validate:"required"`
	Period    string `form:"period" validate:"omitempty,max=16"`
	Threshold *int   `form:"threshold"`
	Grid      *int   `form:"grid"`
	Shape     string `form:"shape" validate:"omitempty,oneof=point polygon"`
}

// ResetDatasetRequest DTO для сброса датасета
// @Description DTO для сброса датасета
type ResetDatasetRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=200"`
}

// DatasetStatsResponse DTO для ответа со статистикой датасета
// @Description DTO для ответа со статистикой датасета
type DatasetStatsResponse struct {
	Loaded         bool       `json:"loaded"`
	Accepted       int        `json:"accepted"`
	Rejected       int        `json:"rejected"`
	Lines          int        `json:"lines"`
	ElapsedSeconds float64    `json:"elapsed_seconds"`
	LoadedAt       *time.Time `json:"loaded_at,omitempty"`
}

// SaveRouteRequest DTO для сохранения маршрута
// @Description DTO для сохранения маршрута
type SaveRouteRequest struct {
	FromAddress string `json:"from_address" validate:"required,max=1024"`
	ToAddress   string `json:"to_address" validate:"required,max=1024"`
}

// RouteResponse DTO для ответа с маршрутом
// @Description DTO для ответа с маршрутом
type RouteResponse struct {
	ID          uuid.UUID `json:"id"`
	FromAddress string    `json:"from_address"`
	ToAddress   string    `json:"to_address"`
	CreatedAt   time.Time `json:"created_at"`
}
