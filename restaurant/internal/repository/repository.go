package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dinehall/booking-service/restaurant/internal/errs"
	"github.com/dinehall/booking-service/restaurant/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type Repository interface {
	CreateRestaurant(ctx context.Context, req model.CreateRestaurantRequest) (model.Restaurant, error)
	GetRestaurant(ctx context.Context, id int64) (model.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]model.Restaurant, error)
	UpdateRestaurant(ctx context.Context, id int64, req model.CreateRestaurantRequest) (model.Restaurant, error)
	DeleteRestaurant(ctx context.Context, id int64) error

	CreateTable(ctx context.Context, req model.CreateTableRequest) (model.Table, error)
	GetTable(ctx context.Context, id int64) (model.Table, error)
	ListTables(ctx context.Context, restaurantID int64) ([]model.Table, error)
	UpdateTable(ctx context.Context, id int64, req model.CreateTableRequest) (model.Table, error)
	DeleteTable(ctx context.Context, id int64) error

	TablesWithCapacity(ctx context.Context, restaurantID int64, minCapacity int) ([]model.Table, error)
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
	restaurantTableName = `restaurant`
	tablesTableName     = `tables`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var restaurantColumns = []string{"id", "name", "address", "phone", "email", "is_closed", "created_at", "updated_at"}

func (r *repository) CreateRestaurant(ctx context.Context, req model.CreateRestaurantRequest) (model.Restaurant, error) {
	q, args, err := qb.Insert(restaurantTableName).
		Columns("name", "address", "phone", "email", "is_closed").
		Values(req.Name, req.Address, req.Phone, req.Email, req.IsClosed).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Restaurant{}, err
	}
	var rest model.Restaurant
	if err := r.db.GetContext(ctx, &rest, q, args...); err != nil {
		r.log.Error("CreateRestaurant", zap.String("q", q), zap.Any("args", args))
		return model.Restaurant{}, err
	}
	return rest, nil
}

func (r *repository) GetRestaurant(ctx context.Context, id int64) (model.Restaurant, error) {
	q, args, err := qb.Select(restaurantColumns...).
		From(restaurantTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Restaurant{}, err
	}
	var rest model.Restaurant
	if err := r.db.GetContext(ctx, &rest, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Restaurant{}, errs.ErrRestaurantNotFound
		}
		return model.Restaurant{}, err
	}
	return rest, nil
}

func (r *repository) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	q, args, err := qb.Select(restaurantColumns...).
		From(restaurantTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var items []model.Restaurant
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpdateRestaurant(ctx context.Context, id int64, req model.CreateRestaurantRequest) (model.Restaurant, error) {
	q, args, err := qb.Update(restaurantTableName).
		Set("name", req.Name).
		Set("address", req.Address).
		Set("phone", req.Phone).
		Set("email", req.Email).
		Set("is_closed", req.IsClosed).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Restaurant{}, err
	}
	var rest model.Restaurant
	if err := r.db.GetContext(ctx, &rest, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Restaurant{}, errs.ErrRestaurantNotFound
		}
		return model.Restaurant{}, err
	}
	return rest, nil
}

func (r *repository) DeleteRestaurant(ctx context.Context, id int64) error {
	q, args, err := qb.Delete(restaurantTableName).
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
		return errs.ErrRestaurantNotFound
	}
	return nil
}

var tableColumns = []string{"id", "table_number", "capacity", "restaurant_id", "created_at", "updated_at"}

func (r *repository) CreateTable(ctx context.Context, req model.CreateTableRequest) (model.Table, error) {
	q, args, err := qb.Insert(tablesTableName).
		Columns("table_number", "capacity", "restaurant_id").
		Values(req.TableNumber, req.Capacity, req.RestaurantID).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Table{}, err
	}
	var table model.Table
	if err := r.db.GetContext(ctx, &table, q, args...); err != nil {
		r.log.Error("CreateTable", zap.String("q", q), zap.Any("args", args))
		return model.Table{}, err
	}
	return table, nil
}

func (r *repository) GetTable(ctx context.Context, id int64) (model.Table, error) {
	q, args, err := qb.Select(tableColumns...).
		From(tablesTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Table{}, err
	}
	var table model.Table
	if err := r.db.GetContext(ctx, &table, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Table{}, errs.ErrTableNotFound
		}
		return model.Table{}, err
	}
	return table, nil
}

func (r *repository) ListTables(ctx context.Context, restaurantID int64) ([]model.Table, error) {
	q, args, err := qb.Select(tableColumns...).
		From(tablesTableName).
		Where(sq.Eq{"restaurant_id": restaurantID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var items []model.Table
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpdateTable(ctx context.Context, id int64, req model.CreateTableRequest) (model.Table, error) {
	q, args, err := qb.Update(tablesTableName).
		Set("table_number", req.TableNumber).
		Set("capacity", req.Capacity).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Table{}, err
	}
	var table model.Table
	if err := r.db.GetContext(ctx, &table, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Table{}, errs.ErrTableNotFound
		}
		return model.Table{}, err
	}
	return table, nil
}

func (r *repository) DeleteTable(ctx context.Context, id int64) error {
	q, args, err := qb.Delete(tablesTableName).
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
		return errs.ErrTableNotFound
	}
	return nil
}

func (r *repository) TablesWithCapacity(ctx context.Context, restaurantID int64, minCapacity int) ([]model.Table, error) {
	q, args, err := qb.Select(tableColumns...).
		From(tablesTableName).
		Where(sq.Eq{"restaurant_id": restaurantID}).
		Where(sq.GtOrEq{"capacity": minCapacity}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var items []model.Table
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}
