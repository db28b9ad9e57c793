package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shenikar/accident_hotspots/internal/config"
	"github.com/shenikar/accident_hotspots/internal/models"
	"github.com/sirupsen/logrus"
)

const maxAddressLen = 255

// RouteHistoryRepository определяет контракт для работы с бд истории маршрутов
type RouteHistoryRepository interface {
	List(ctx context.Context, userID string, limit int) ([]*models.RouteHistory, error)
	Save(ctx context.Context, route *models.RouteHistory, keep int) error
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

// RouteHistoryService определяет контракт истории маршрутов пользователя
type RouteHistoryService interface {
	ListRoutes(ctx context.Context, userID string, limit *int) ([]*models.RouteHistory, error)
	SaveRoute(ctx context.Context, route *models.RouteHistory) error
	DeleteRoute(ctx context.Context, userID string, id uuid.UUID) error
}

type routeHistoryService struct {
	repo   RouteHistoryRepository
	logger *logrus.Logger
	cfg    *config.Config
}

// NewRouteHistoryService создает сервис; repo == nil - история отключена
func NewRouteHistoryService(repo RouteHistoryRepository, logger *logrus.Logger, cfg *config.Config) RouteHistoryService {
	return &routeHistoryService{
		repo:   repo,
		logger: logger,
		cfg:    cfg,
	}
}

// ListRoutes возвращает последние маршруты, лимит приводится к [1, ROUTE_HISTORY_MAX_LIMIT]
func (s *routeHistoryService) ListRoutes(ctx context.Context, userID string, limit *int) ([]*models.RouteHistory, error) {
	if s.repo == nil {
		return nil, ErrRouteHistoryDisabled
	}
	log := s.logger.WithFields(logrus.Fields{
		"service": "route_history",
		"method":  "ListRoutes",
		"user_id": userID,
	})

	n := s.cfg.RouteHistoryKeep
	if limit != nil {
		n = *limit
	}
	n = min(max(n, 1), s.cfg.RouteHistoryMaxLimit)

	routes, err := s.repo.List(ctx, userID, n)
	if err != nil {
		log.WithError(err).Error("Failed to list routes in repository")
		return nil, fmt.Errorf("service: could not list routes: %w", err)
	}
	return routes, nil
}

// SaveRoute сохраняет маршрут; повтор той же пары адресов только обновляет время
func (s *routeHistoryService) SaveRoute(ctx context.Context, route *models.RouteHistory) error {
	if s.repo == nil {
		return ErrRouteHistoryDisabled
	}
	log := s.logger.WithFields(logrus.Fields{
		"service": "route_history",
		"method":  "SaveRoute",
		"user_id": route.UserID,
	})

	route.FromAddress = strings.TrimSpace(route.FromAddress)
	route.ToAddress = strings.TrimSpace(route.ToAddress)
	if route.FromAddress == "" || route.ToAddress == "" {
		return invalid("address", "from and to addresses are required")
	}
	if utf8.RuneCountInString(route.FromAddress) > maxAddressLen || utf8.RuneCountInString(route.ToAddress) > maxAddressLen {
		return invalid("address", "must be at most %d characters", maxAddressLen)
	}

	if err := s.repo.Save(ctx, route, s.cfg.RouteHistoryKeep); err != nil {
		log.WithError(err).Error("Failed to save route in repository")
		return fmt.Errorf("service: could not save route: %w", err)
	}

	log.WithField("route_id", route.ID).Info("Route saved")
	return nil
}

// DeleteRoute удаляет маршрут пользователя
func (s *routeHistoryService) DeleteRoute(ctx context.Context, userID string, id uuid.UUID) error {
	if s.repo == nil {
		return ErrRouteHistoryDisabled
	}
	log := s.logger.WithFields(logrus.Fields{
		"service":  "route_history",
		"method":   "DeleteRoute",
		"user_id":  userID,
		"route_id": id,
	})

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		log.WithError(err).Warn("Failed to delete route")
		return fmt.Errorf("service: could not delete route: %w", err)
	}

	log.Info("Route deleted")
	return nil
}
