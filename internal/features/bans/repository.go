// Package bans: реестр заблокированных покупателей.
// Наличие записи и есть блокировка, других полей нет.
package bans

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/topup-bot/internal/db/postgres"
)

// Ban: запись о блокировке.
type Ban struct {
	UserID   int64     `db:"user_id"`
	BannedAt time.Time `db:"banned_at"`
}

// PostgresRepository хранит блокировки в таблице bans.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Exists(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM bans WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки блокировки: %w", postgres.Classify(err))
	}
	return exists, nil
}

// Insert идемпотентен: повторная блокировка ничего не меняет.
func (r *PostgresRepository) Insert(ctx context.Context, userID int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `INSERT INTO bans (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return false, fmt.Errorf("ошибка блокировки: %w", postgres.Classify(err))
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]Ban, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id, banned_at FROM bans ORDER BY banned_at`)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения блокировок: %w", postgres.Classify(err))
	}
	defer rows.Close()

	var out []Ban
	for rows.Next() {
		var b Ban
		if err := rows.Scan(&b.UserID, &b.BannedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования блокировки: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

var _ Repository = (*PostgresRepository)(nil)
