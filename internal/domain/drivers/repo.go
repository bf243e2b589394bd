package drivers

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

const driverColumns = `
	id, name, father_name, mobile, email, licence_number, aadhar_number,
	address, room_rent, active, created_at, updated_at`

func scanDriver(row pgx.Row) (*Driver, error) {
	var d Driver
	err := row.Scan(&d.ID, &d.Name, &d.FatherName, &d.Mobile, &d.Email,
		&d.LicenceNumber, &d.AadharNumber, &d.Address, &d.RoomRent, &d.Active,
		&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repo) Create(ctx context.Context, d Driver) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO drivers (name, father_name, mobile, email, licence_number,
			aadhar_number, address, room_rent)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`, d.Name, d.FatherName, d.Mobile, d.Email, d.LicenceNumber,
		d.AadharNumber, d.Address, d.RoomRent).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert driver: %w", err)
	}
	return id, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Driver, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE id=$1`, id)
	d, err := scanDriver(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

// GetByName — точное совпадение имени; нужен импорту из Excel.
func (r *Repo) GetByName(ctx context.Context, name string) (*Driver, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+driverColumns+` FROM drivers WHERE name=$1`, name)
	d, err := scanDriver(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

func (r *Repo) List(ctx context.Context, onlyActive bool) ([]Driver, error) {
	q := `SELECT ` + driverColumns + ` FROM drivers ORDER BY name`
	if onlyActive {
		q = `SELECT ` + driverColumns + ` FROM drivers WHERE active ORDER BY name`
	}
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *Repo) SetRoomRent(ctx context.Context, id int64, roomRent bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE drivers SET room_rent=$2, updated_at=now() WHERE id=$1`, id, roomRent)
	return err
}

func (r *Repo) SetActive(ctx context.Context, id int64, active bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE drivers SET active=$2, updated_at=now() WHERE id=$1`, id, active)
	return err
}
