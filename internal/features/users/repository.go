// Package users: repository.go отвечает за все операции с таблицей users в БД.
// Каждая функция выполняет один SQL-запрос и возвращает результат или ошибку.
package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/topup-bot/internal/common"
	"serotonyl.ru/topup-bot/internal/db/postgres"
)

// PostgresRepository хранит покупателей в PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Ensure создаёт покупателя, если его нет. Существующую запись не трогает,
// кроме username: он мог смениться.
func (r *PostgresRepository) Ensure(ctx context.Context, userID int64, username, language string) error {
	query := `
		INSERT INTO users (user_id, username, language, bonuses)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (user_id) DO UPDATE
		SET username = EXCLUDED.username, updated_at = NOW()
		WHERE users.username IS DISTINCT FROM EXCLUDED.username
	`
	if _, err := r.db.Exec(ctx, query, userID, username, language); err != nil {
		return fmt.Errorf("ошибка создания покупателя (user_id=%d): %w", userID, postgres.Classify(err))
	}
	return nil
}

// GetByUserID: если не найден, common.ErrNotFound.
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID int64) (*User, error) {
	query := `
		SELECT user_id, username, language, bonuses, referral_code, referred_by, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`
	var u User
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&u.UserID, &u.Username, &u.Language, &u.Bonuses,
		&u.ReferralCode, &u.ReferredBy, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("покупатель не найден (user_id=%d): %w", userID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка чтения покупателя (user_id=%d): %w", userID, postgres.Classify(err))
	}
	return &u, nil
}

// SetLanguage меняет язык интерфейса.
func (r *PostgresRepository) SetLanguage(ctx context.Context, userID int64, language string) error {
	query := `UPDATE users SET language = $2, updated_at = NOW() WHERE user_id = $1`
	if _, err := r.db.Exec(ctx, query, userID, language); err != nil {
		return fmt.Errorf("ошибка смены языка: %w", postgres.Classify(err))
	}
	return nil
}

// SetReferrer записывает пригласившего, только если он ещё не записан.
// Возвращает true, если запись изменилась.
func (r *PostgresRepository) SetReferrer(ctx context.Context, userID, referrerID int64) (bool, error) {
	query := `
		UPDATE users SET referred_by = $2, updated_at = NOW()
		WHERE user_id = $1 AND referred_by IS NULL
	`
	tag, err := r.db.Exec(ctx, query, userID, referrerID)
	if err != nil {
		return false, fmt.Errorf("ошибка записи реферера: %w", postgres.Classify(err))
	}
	return tag.RowsAffected() == 1, nil
}

// EnsureReferralCode ставит код, если его ещё нет, и возвращает сохранённое значение.
func (r *PostgresRepository) EnsureReferralCode(ctx context.Context, userID int64, code string) (string, error) {
	query := `
		UPDATE users SET referral_code = COALESCE(referral_code, $2), updated_at = NOW()
		WHERE user_id = $1
		RETURNING referral_code
	`
	var stored string
	if err := r.db.QueryRow(ctx, query, userID, code).Scan(&stored); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("покупатель не найден (user_id=%d): %w", userID, common.ErrNotFound)
		}
		return "", fmt.Errorf("ошибка записи реферального кода: %w", postgres.Classify(err))
	}
	return stored, nil
}

// AddBonuses атомарно увеличивает бонусный баланс.
// Возвращает false, если покупателя нет.
func (r *PostgresRepository) AddBonuses(ctx context.Context, userID, amount int64) (bool, error) {
	query := `UPDATE users SET bonuses = bonuses + $2, updated_at = NOW() WHERE user_id = $1`
	tag, err := r.db.Exec(ctx, query, userID, amount)
	if err != nil {
		return false, fmt.Errorf("ошибка начисления бонусов: %w", postgres.Classify(err))
	}
	return tag.RowsAffected() == 1, nil
}

var _ Repository = (*PostgresRepository)(nil)
