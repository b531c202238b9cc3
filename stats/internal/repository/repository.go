package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dinehall/booking-service/stats/internal/model"
)

type Repository interface {
	RecordEvent(ctx context.Context, event model.ReservationEvent) error
	StatsByRestaurant(ctx context.Context, restaurantID int64) ([]model.RestaurantStats, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// RecordEvent stores the event and bumps the per-restaurant counter in one
// transaction. A replayed event id is a no-op, so redeliveries do not double
// count.
func (r *repository) RecordEvent(ctx context.Context, event model.ReservationEvent) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	query, args, err := qb.Insert("reservation_event").
		Columns("event_id", "event_type", "reservation_id", "restaurant_id", "occurred_at").
		Values(event.EventID, event.Type, event.ReservationID, event.RestaurantID, event.At).
		Suffix("on conflict (event_id) do nothing").
		ToSql()
	if err != nil {
		return errors.Wrap(err, "build insert event")
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "insert event")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		r.log.Debug("duplicate event skipped", zap.String("eventId", event.EventID))
		return nil
	}

	query, args, err = qb.Insert("reservation_stats").
		Columns("restaurant_id", "event_type", "total").
		Values(event.RestaurantID, event.Type, 1).
		Suffix("on conflict (restaurant_id, event_type) do update set total = reservation_stats.total + 1, updated_at = now()").
		ToSql()
	if err != nil {
		return errors.Wrap(err, "build upsert stats")
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "upsert stats")
	}

	return tx.Commit()
}

func (r *repository) StatsByRestaurant(ctx context.Context, restaurantID int64) ([]model.RestaurantStats, error) {
	query, args, err := qb.Select("restaurant_id", "event_type", "total", "updated_at").
		From("reservation_stats").
		Where(sq.Eq{"restaurant_id": restaurantID}).
		OrderBy("event_type").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build select stats")
	}
	stats := make([]model.RestaurantStats, 0)
	if err := r.db.SelectContext(ctx, &stats, query, args...); err != nil {
		return nil, errors.Wrap(err, "select stats")
	}
	return stats, nil
}
