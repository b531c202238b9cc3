package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dinehall/booking-service/reservation/internal/errs"
	"github.com/dinehall/booking-service/reservation/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type Repository interface {
	CreateReservation(ctx context.Context, req model.CreateReservationRequest, tableID int64) (model.Reservation, error)
	GetReservation(ctx context.Context, id int64) (model.Reservation, error)
	ListReservations(ctx context.Context) ([]model.Reservation, error)
	ListByCustomerPhone(ctx context.Context, phone string) ([]model.Reservation, error)
	ListByCustomerEmail(ctx context.Context, email string) ([]model.Reservation, error)
	ListByRestaurantAndStatus(ctx context.Context, restaurantID int64, status model.Status) ([]model.Reservation, error)
	SearchReservations(ctx context.Context, req model.SearchReservationsRequest) ([]model.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, from, to model.Status) (model.Reservation, error)
	CancelReservation(ctx context.Context, id int64) (model.Reservation, error)
	DeleteReservation(ctx context.Context, id int64) error
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

const (
	reservationTableName = `reservation`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// reservation_date/reservation_time are date and time columns; they are read
// back as the wire strings the API speaks.
var reservationColumns = []string{
	"id", "restaurant_id", "table_id",
	"customer_name", "customer_email", "customer_phone",
	"to_char(reservation_date, 'YYYY-MM-DD') as reservation_date",
	"to_char(reservation_time, 'HH24:MI') as reservation_time",
	"number_of_people", "status", "canceled_at", "created_at", "updated_at",
}

var returningClause = "returning " + strings.Join(reservationColumns, ", ")

// CreateReservation persists a PENDING reservation against tableID. The
// partial unique index on (restaurant_id, table_id, reservation_date,
// reservation_time) over occupying statuses turns a concurrent double booking
// into a unique violation, reported as ErrNoAvailability.
func (r *repository) CreateReservation(ctx context.Context, req model.CreateReservationRequest, tableID int64) (model.Reservation, error) {
	q, args, err := qb.Insert(reservationTableName).
		Columns("restaurant_id", "table_id", "customer_name", "customer_email", "customer_phone",
			"reservation_date", "reservation_time", "number_of_people", "status").
		Values(req.RestaurantID, tableID, req.CustomerName, req.CustomerEmail, req.CustomerPhone,
			req.Date, req.Time, req.NumberOfPeople, model.StatusPending).
		Suffix(returningClause).
		ToSql()
	if err != nil {
		return model.Reservation{}, err
	}
	var rsv model.Reservation
	if err := r.db.GetContext(ctx, &rsv, q, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.Reservation{}, fmt.Errorf("table %d is already booked for this slot: %w", tableID, errs.ErrNoAvailability)
		}
		r.log.Error("CreateReservation", zap.String("q", q), zap.Any("args", args))
		return model.Reservation{}, err
	}
	return rsv, nil
}

func (r *repository) GetReservation(ctx context.Context, id int64) (model.Reservation, error) {
	q, args, err := qb.Select(reservationColumns...).
		From(reservationTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Reservation{}, err
	}
	var rsv model.Reservation
	if err := r.db.GetContext(ctx, &rsv, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reservation{}, errs.ErrNotFound
		}
		return model.Reservation{}, err
	}
	return rsv, nil
}

func (r *repository) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	q, args, err := qb.Select(reservationColumns...).
		From(reservationTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var items []model.Reservation
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListByCustomerPhone(ctx context.Context, phone string) ([]model.Reservation, error) {
	return r.listBy(ctx, sq.Eq{"customer_phone": phone})
}

func (r *repository) ListByCustomerEmail(ctx context.Context, email string) ([]model.Reservation, error) {
	return r.listBy(ctx, sq.Eq{"customer_email": email})
}

// listBy returns most-recent-first.
func (r *repository) listBy(ctx context.Context, pred interface{}) ([]model.Reservation, error) {
	q, args, err := qb.Select(reservationColumns...).
		From(reservationTableName).
		Where(pred).
		OrderBy("reservation_date desc", "reservation_time desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var items []model.Reservation
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListByRestaurantAndStatus(ctx context.Context, restaurantID int64, status model.Status) ([]model.Reservation, error) {
	q, args, err := qb.Select(reservationColumns...).
		From(reservationTableName).
		Where(sq.Eq{"restaurant_id": restaurantID, "status": status}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var items []model.Reservation
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

// SearchReservations is the query behind the availability check. It is
// deliberately status-blind; the caller decides which statuses matter.
func (r *repository) SearchReservations(ctx context.Context, req model.SearchReservationsRequest) ([]model.Reservation, error) {
	q, args, err := qb.Select(reservationColumns...).
		From(reservationTableName).
		Where(sq.Eq{"restaurant_id": req.RestaurantID}).
		Where(sq.Expr("reservation_date = ?::date", req.Date)).
		Where(sq.Expr("reservation_time = ?::time", req.Time)).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var items []model.Reservation
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateStatus applies a single conditional transition. Zero rows updated
// means either the reservation does not exist or it is not in the expected
// status; the follow-up read tells the two apart.
func (r *repository) UpdateStatus(ctx context.Context, id int64, from, to model.Status) (model.Reservation, error) {
	upd := qb.Update(reservationTableName).
		Set("status", to).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "status": from})
	if to == model.StatusCanceled {
		upd = upd.Set("canceled_at", sq.Expr("now()"))
	}
	q, args, err := upd.Suffix(returningClause).ToSql()
	if err != nil {
		return model.Reservation{}, err
	}
	var rsv model.Reservation
	if err := r.db.GetContext(ctx, &rsv, q, args...); err == nil {
		return rsv, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return model.Reservation{}, err
	}

	// The status may have moved again between the update and this read,
	// so the message reports the re-read, not a claimed current status.
	current, err := r.GetReservation(ctx, id)
	if err != nil {
		return model.Reservation{}, err
	}
	return model.Reservation{}, fmt.Errorf("move from %s to %s matched no rows, status at re-read: %s: %w",
		from, to, current.Status, errs.ErrInvalidStatusTransition)
}

// CancelReservation is unconditional: any status, including COMPLETED and an
// already CANCELED one, may be canceled again; canceled_at is overwritten.
func (r *repository) CancelReservation(ctx context.Context, id int64) (model.Reservation, error) {
	q, args, err := qb.Update(reservationTableName).
		Set("status", model.StatusCanceled).
		Set("canceled_at", sq.Expr("now()")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix(returningClause).
		ToSql()
	if err != nil {
		return model.Reservation{}, err
	}
	var rsv model.Reservation
	if err := r.db.GetContext(ctx, &rsv, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reservation{}, errs.ErrNotFound
		}
		return model.Reservation{}, err
	}
	return rsv, nil
}

func (r *repository) DeleteReservation(ctx context.Context, id int64) error {
	q, args, err := qb.Delete(reservationTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 { //nolint:errcheck
		return errs.ErrNotFound
	}
	return nil
}
