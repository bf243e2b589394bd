package entries

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bncabs/payroll-bot/internal/domain/payroll"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const entryColumns = `
	e.id, e.entry_date, e.driver_id, e.vehicle_id, d.name, v.number,
	e.earnings, e.cash_collection, e.offline_earnings, e.offline_cash,
	e.trips, e.toll, e.cng, e.petrol, e.other_expenses,
	e.login_hours, e.opening_balance, e.room_rent,
	e.pay_percent, e.salary, e.payable, e.commission, e.pl,
	e.source, e.created_at, e.updated_at`

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(
		&e.ID, &e.Date, &e.DriverID, &e.VehicleID, &e.Driver, &e.Vehicle,
		&e.Earnings, &e.CashCollection, &e.OfflineEarnings, &e.OfflineCash,
		&e.Trips, &e.Toll, &e.CNG, &e.Petrol, &e.OtherExpenses,
		&e.LoginHours, &e.OpeningBalance, &e.RoomRent,
		&e.PayPercent, &e.Salary, &e.Payable, &e.Commission, &e.PL,
		&e.Source, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create сохраняет запись, предварительно пересчитав производные поля из
// сырых. Другого пути записать pay_percent/salary/payable/commission/pl нет.
func (r *Repo) Create(ctx context.Context, e *Entry) (int64, error) {
	e.Derived = payroll.Derive(e.Inputs)
	if e.Source == "" {
		e.Source = "bot"
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO entries (
			entry_date, driver_id, vehicle_id,
			earnings, cash_collection, offline_earnings, offline_cash,
			trips, toll, cng, petrol, other_expenses,
			login_hours, opening_balance, room_rent,
			pay_percent, salary, payable, commission, pl, source
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		RETURNING id
	`,
		e.Date, e.DriverID, e.VehicleID,
		e.Earnings, e.CashCollection, e.OfflineEarnings, e.OfflineCash,
		e.Trips, e.Toll, e.CNG, e.Petrol, e.OtherExpenses,
		e.LoginHours, e.OpeningBalance, e.RoomRent,
		e.PayPercent, e.Salary, e.Payable, e.Commission, e.PL, e.Source,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert entry: %w", err)
	}
	e.ID = id
	return id, nil
}

// Update перезаписывает сырые поля записи и пересчитывает производные.
func (r *Repo) Update(ctx context.Context, e *Entry) error {
	e.Derived = payroll.Derive(e.Inputs)

	_, err := r.pool.Exec(ctx, `
		UPDATE entries SET
			entry_date=$2, driver_id=$3, vehicle_id=$4,
			earnings=$5, cash_collection=$6, offline_earnings=$7, offline_cash=$8,
			trips=$9, toll=$10, cng=$11, petrol=$12, other_expenses=$13,
			login_hours=$14, opening_balance=$15, room_rent=$16,
			pay_percent=$17, salary=$18, payable=$19, commission=$20, pl=$21,
			updated_at=now()
		WHERE id=$1
	`,
		e.ID, e.Date, e.DriverID, e.VehicleID,
		e.Earnings, e.CashCollection, e.OfflineEarnings, e.OfflineCash,
		e.Trips, e.Toll, e.CNG, e.Petrol, e.OtherExpenses,
		e.LoginHours, e.OpeningBalance, e.RoomRent,
		e.PayPercent, e.Salary, e.Payable, e.Commission, e.PL,
	)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	return nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Entry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+entryColumns+`
		FROM entries e
		JOIN drivers d ON d.id = e.driver_id
		JOIN vehicles v ON v.id = e.vehicle_id
		WHERE e.id = $1
	`, id)
	e, err := scanEntry(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

// List возвращает все записи (новые сверху). Фильтры недельного отчёта
// применяет сам движок агрегации, не SQL.
func (r *Repo) List(ctx context.Context) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM entries e
		JOIN drivers d ON d.id = e.driver_id
		JOIN vehicles v ON v.id = e.vehicle_id
		ORDER BY e.entry_date DESC, e.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collect(rows)
}

// ListByDriver — последние записи одного водителя для меню «Мои записи».
func (r *Repo) ListByDriver(ctx context.Context, driverID int64, limit int) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM entries e
		JOIN drivers d ON d.id = e.driver_id
		JOIN vehicles v ON v.id = e.vehicle_id
		WHERE e.driver_id = $1
		ORDER BY e.entry_date DESC, e.id DESC
		LIMIT $2
	`, driverID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collect(rows)
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM entries WHERE id=$1`, id)
	return err
}

func collect(rows pgx.Rows) ([]Entry, error) {
	out := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}
