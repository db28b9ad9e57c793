package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/accident_hotspots/internal/models"
	"github.com/shenikar/accident_hotspots/internal/service"
)

type RouteHistoryRepository struct {
	db *pgxpool.Pool
}

func NewRouteHistoryRepository(db *pgxpool.Pool) service.RouteHistoryRepository {
	return &RouteHistoryRepository{
		db: db,
	}
}

// List возвращает последние маршруты пользователя, новые первыми
func (r *RouteHistoryRepository) List(ctx context.Context, userID string, limit int) ([]*models.RouteHistory, error) {
	query := `
		SELECT id, user_id, from_address, to_address, created_at
		FROM route_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list route history: %w", err)
	}
	defer rows.Close()

	var routes []*models.RouteHistory
	for rows.Next() {
		route := &models.RouteHistory{}
		if err := rows.Scan(
			&route.ID,
			&route.UserID,
			&route.FromAddress,
			&route.ToAddress,
			&route.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan route history row: %w", err)
		}
		routes = append(routes, route)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating route history rows: %w", err)
	}
	return routes, nil
}

// Save добавляет маршрут или обновляет время у существующего
// и оставляет только keep последних записей пользователя
func (r *RouteHistoryRepository) Save(ctx context.Context, route *models.RouteHistory, keep int) error {
	upsert := `
		INSERT INTO route_history (user_id, from_address, to_address)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, from_address, to_address)
		DO UPDATE SET created_at = NOW()
		RETURNING id, created_at;
	`
	trim := `
		DELETE FROM route_history
		WHERE user_id = $1 AND id NOT IN (
			SELECT id FROM route_history
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		);
	`

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, upsert,
			route.UserID,
			route.FromAddress,
			route.ToAddress,
		).Scan(&route.ID, &route.CreatedAt); err != nil {
			return fmt.Errorf("failed to save route: %w", err)
		}

		if _, err := tx.Exec(ctx, trim, route.UserID, keep); err != nil {
			return fmt.Errorf("failed to trim route history: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// Delete удаляет маршрут, только если он принадлежит пользователю
func (r *RouteHistoryRepository) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	query := `DELETE FROM route_history WHERE id = $1 AND user_id = $2;`
	cmdTag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete route: %w", err)
	}

	// Чужая или несуществующая запись
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("route %s: %w", id, service.ErrRouteNotFound)
	}
	return nil
}
