package vehicles

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const vehicleColumns = `id, number, vehicle_type, assigned_driver_id, active, created_at, updated_at`

func scanVehicle(row pgx.Row) (*Vehicle, error) {
	var v Vehicle
	err := row.Scan(&v.ID, &v.Number, &v.Type, &v.AssignedDriverID, &v.Active,
		&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repo) Create(ctx context.Context, number, vtype string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO vehicles (number, vehicle_type) VALUES ($1,$2) RETURNING id
	`, number, vtype).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert vehicle: %w", err)
	}
	return id, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Vehicle, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id=$1`, id)
	v, err := scanVehicle(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}

// GetByNumber — точное совпадение номера; нужен импорту из Excel.
func (r *Repo) GetByNumber(ctx context.Context, number string) (*Vehicle, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE number=$1`, number)
	v, err := scanVehicle(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}

func (r *Repo) List(ctx context.Context, onlyActive bool) ([]Vehicle, error) {
	q := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY number`
	if onlyActive {
		q = `SELECT ` + vehicleColumns + ` FROM vehicles WHERE active ORDER BY number`
	}
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func (r *Repo) AssignDriver(ctx context.Context, vehicleID int64, driverID *int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE vehicles SET assigned_driver_id=$2, updated_at=now() WHERE id=$1`,
		vehicleID, driverID)
	return err
}

func (r *Repo) SetActive(ctx context.Context, id int64, active bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE vehicles SET active=$2, updated_at=now() WHERE id=$1`, id, active)
	return err
}
