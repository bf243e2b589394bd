package users

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

const userColumns = `id, name, role, telegram_id, driver_id, pin_hash, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Role, &u.TelegramID, &u.DriverID,
		&u.PINHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) GetByTelegramID(ctx context.Context, tgID int64) (*User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, tgID)
	u, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// EnsureAdmin — авто-админ: чат из конфига получает admin-профиль при первом
// /start, роль существующего админа не понижается.
func (r *Repo) EnsureAdmin(ctx context.Context, tgID int64, name string) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, role, telegram_id)
		VALUES ($1, 'admin', $2)
		ON CONFLICT (telegram_id)
		DO UPDATE SET role='admin', updated_at=now()
		RETURNING `+userColumns,
		name, tgID)
	return scanUser(row)
}

// CreateDriverUser заводит учётку водителя с PIN-кодом; Telegram привяжется
// позже, когда водитель войдёт по PIN.
func (r *Repo) CreateDriverUser(ctx context.Context, name string, driverID int64, pinHash string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, role, driver_id, pin_hash)
		VALUES ($1, 'driver', $2, $3)
		RETURNING id
	`, name, driverID, pinHash).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

// ListDrivers — все водительские учётки; вход по PIN перебирает их
// и сверяет хэш (парк маленький, это дешевле отдельного индекса по PIN).
func (r *Repo) ListDrivers(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = 'driver' ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// LinkTelegram привязывает чат к учётке (и отвязывает его от других).
func (r *Repo) LinkTelegram(ctx context.Context, userID, tgID int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`UPDATE users SET telegram_id=NULL, updated_at=now() WHERE telegram_id=$1 AND id<>$2`,
		tgID, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE users SET telegram_id=$2, updated_at=now() WHERE id=$1`,
		userID, tgID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *Repo) SetPINHash(ctx context.Context, userID int64, pinHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET pin_hash=$2, updated_at=now() WHERE id=$1`, userID, pinHash)
	return err
}
