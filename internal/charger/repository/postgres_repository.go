package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/evoltsoft/station-api/internal/charger/domain"
	"github.com/evoltsoft/station-api/internal/platform/logger"
)

var ErrChargerNotFound = errors.New("charger not found")
var ErrChargerConflict = errors.New("charger with this name already exists")

type ChargerRepository interface {
	CreateCharger(ctx context.Context, charger *domain.Charger) error
	GetChargerByID(ctx context.Context, id string) (*domain.Charger, error)
	GetChargerByName(ctx context.Context, name string) (*domain.Charger, error)
	ListChargers(ctx context.Context, filter domain.ListFilter) ([]domain.Charger, error)
	UpdateCharger(ctx context.Context, id string, changes domain.UpdateChargerRequest) (*domain.Charger, error)
	DeleteCharger(ctx context.Context, id string) error
}

type postgresChargerRepository struct {
	db *sql.DB
}

func NewPostgresChargerRepository(db *sql.DB) ChargerRepository {
	return &postgresChargerRepository{db: db}
}

const chargerColumns = `id, name, latitude, longitude, status, power_output, connector_type, created_at, updated_at`

func scanCharger(row interface{ Scan(...interface{}) error }) (*domain.Charger, error) {
	var c domain.Charger
	err := row.Scan(
		&c.ID, &c.Name, &c.Location.Latitude, &c.Location.Longitude,
		&c.Status, &c.PowerOutput, &c.ConnectorType, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// isUniqueViolation reports a duplicate on a unique index, code 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isBadUUID reports a malformed id literal, which postgres rejects with
// code 22P02 before the row lookup even runs. Treated as not-found.
func isBadUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

func (r *postgresChargerRepository) CreateCharger(ctx context.Context, charger *domain.Charger) error {
	query := `INSERT INTO chargers (name, latitude, longitude, status, power_output, connector_type, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at, updated_at`

	charger.CreatedAt = time.Now()
	charger.UpdatedAt = time.Now()

	err := r.db.QueryRowContext(ctx, query,
		charger.Name, charger.Location.Latitude, charger.Location.Longitude,
		charger.Status, charger.PowerOutput, charger.ConnectorType,
		charger.CreatedAt, charger.UpdatedAt,
	).Scan(&charger.ID, &charger.CreatedAt, &charger.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrChargerConflict
		}
		logger.Error("CreateCharger: failed to insert charger", err)
		return err
	}
	return nil
}

func (r *postgresChargerRepository) GetChargerByID(ctx context.Context, id string) (*domain.Charger, error) {
	query := `SELECT ` + chargerColumns + ` FROM chargers WHERE id = $1`
	charger, err := scanCharger(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isBadUUID(err) {
			return nil, ErrChargerNotFound
		}
		logger.Error("GetChargerByID: query failed", err)
		return nil, err
	}
	return charger, nil
}

func (r *postgresChargerRepository) GetChargerByName(ctx context.Context, name string) (*domain.Charger, error) {
	query := `SELECT ` + chargerColumns + ` FROM chargers WHERE name = $1`
	charger, err := scanCharger(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChargerNotFound
		}
		logger.Error("GetChargerByName: query failed", err)
		return nil, err
	}
	return charger, nil
}

// buildListQuery translates a filter into a WHERE/ORDER BY clause. All
// conditions are AND-combined; an unrecognized sort value keeps the store's
// natural order.
func buildListQuery(filter domain.ListFilter) (string, []interface{}) {
	query := `SELECT ` + chargerColumns + ` FROM chargers`
	conds := []string{}
	args := []interface{}{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.ConnectorType != "" {
		args = append(args, filter.ConnectorType)
		conds = append(conds, fmt.Sprintf("connector_type = $%d", len(args)))
	}
	if filter.PowerOutput != nil {
		args = append(args, *filter.PowerOutput)
		conds = append(conds, fmt.Sprintf("power_output = $%d", len(args)))
	}
	if filter.Latitude != nil && filter.Longitude != nil {
		args = append(args, *filter.Latitude)
		conds = append(conds, fmt.Sprintf("latitude = $%d", len(args)))
		args = append(args, *filter.Longitude)
		conds = append(conds, fmt.Sprintf("longitude = $%d", len(args)))
	}
	if filter.Name != "" {
		args = append(args, filter.Name)
		conds = append(conds, fmt.Sprintf("name ILIKE '%%' || $%d || '%%'", len(args)))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	switch filter.Sort {
	case domain.SortNewest:
		query += " ORDER BY created_at DESC"
	case domain.SortOldest:
		query += " ORDER BY created_at ASC"
	}

	return query, args
}

func (r *postgresChargerRepository) ListChargers(ctx context.Context, filter domain.ListFilter) ([]domain.Charger, error) {
	query, args := buildListQuery(filter)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("ListChargers: query failed", err)
		return nil, err
	}
	defer rows.Close()

	chargers := []domain.Charger{}
	for rows.Next() {
		var c domain.Charger
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Location.Latitude, &c.Location.Longitude,
			&c.Status, &c.PowerOutput, &c.ConnectorType, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			logger.Error("ListChargers: scan failed", err)
			return nil, err
		}
		chargers = append(chargers, c)
	}
	if err := rows.Err(); err != nil {
		logger.Error("ListChargers: rows iteration error", err)
		return nil, err
	}
	return chargers, nil
}

func (r *postgresChargerRepository) UpdateCharger(ctx context.Context, id string, changes domain.UpdateChargerRequest) (*domain.Charger, error) {
	sets := []string{}
	args := []interface{}{}

	if changes.Name != nil {
		args = append(args, strings.TrimSpace(*changes.Name))
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if changes.Location != nil {
		args = append(args, *changes.Location.Latitude)
		sets = append(sets, fmt.Sprintf("latitude = $%d", len(args)))
		args = append(args, *changes.Location.Longitude)
		sets = append(sets, fmt.Sprintf("longitude = $%d", len(args)))
	}
	if changes.Status != nil {
		args = append(args, *changes.Status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}
	if changes.PowerOutput != nil {
		args = append(args, *changes.PowerOutput)
		sets = append(sets, fmt.Sprintf("power_output = $%d", len(args)))
	}
	if changes.ConnectorType != nil {
		args = append(args, strings.TrimSpace(*changes.ConnectorType))
		sets = append(sets, fmt.Sprintf("connector_type = $%d", len(args)))
	}

	// updated_at always moves, which also makes an empty update valid SQL
	args = append(args, time.Now())
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))

	args = append(args, id)
	query := "UPDATE chargers SET " + strings.Join(sets, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING ", len(args)) + chargerColumns

	charger, err := scanCharger(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isBadUUID(err) {
			return nil, ErrChargerNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrChargerConflict
		}
		logger.Error("UpdateCharger: query failed", err)
		return nil, err
	}
	return charger, nil
}

func (r *postgresChargerRepository) DeleteCharger(ctx context.Context, id string) error {
	query := `DELETE FROM chargers WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if isBadUUID(err) {
			return ErrChargerNotFound
		}
		logger.Error("DeleteCharger: exec failed", err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		logger.Error("DeleteCharger: rows affected failed", err)
		return err
	}
	if affected == 0 {
		return ErrChargerNotFound
	}
	return nil
}
