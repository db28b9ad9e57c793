package models

import (
	"time"

	"github.com/google/uuid"
)

// RouteHistory - сохраненный маршрут пользователя
type RouteHistory struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"user_id"`
	FromAddress string    `json:"from_address"`
	ToAddress   string    `json:"to_address"`
	CreatedAt   time.Time `json:"created_at"`
}
