package accounting

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"serotonyl.ru/topup-bot/internal/common"
	"serotonyl.ru/topup-bot/internal/db/postgres"
)

// PostgresRepository пишет начисления в users.bonuses и bonus_transactions.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Credit увеличивает баланс и пишет журнал в одной транзакции.
// Возвращает false, если получателя нет в users.
func (r *PostgresRepository) Credit(ctx context.Context, t *Transaction) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("ошибка начала транзакции: %w", postgres.Classify(err))
	}
	defer tx.Rollback(ctx)

	// Только атомарное увеличение: чтение-изменение-запись теряет начисления
	tag, err := tx.Exec(ctx, `
		UPDATE users SET bonuses = bonuses + $2, updated_at = NOW()
		WHERE user_id = $1
	`, t.UserID, t.Amount)
	if err != nil {
		return false, fmt.Errorf("ошибка начисления бонусов: %w", postgres.Classify(err))
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO bonus_transactions (id, user_id, amount, kind, order_id, source_user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, t.ID, t.UserID, t.Amount, t.Kind, t.OrderID, t.SourceUserID).Scan(&t.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("ошибка записи начисления: %w", postgres.Classify(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("ошибка фиксации начисления: %w", postgres.Classify(err))
	}
	return true, nil
}

func (r *PostgresRepository) Balance(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, `SELECT bonuses FROM users WHERE user_id = $1`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, common.ErrNotFound
		}
		return 0, fmt.Errorf("ошибка чтения баланса: %w", postgres.Classify(err))
	}
	return balance, nil
}

func (r *PostgresRepository) History(ctx context.Context, userID int64, limit int) ([]Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, amount, kind, order_id, source_user_id, created_at
		FROM bonus_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения начислений: %w", postgres.Classify(err))
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Kind, &t.OrderID, &t.SourceUserID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования начисления: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

var _ Repository = (*PostgresRepository)(nil)
