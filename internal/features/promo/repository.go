package promo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"serotonyl.ru/topup-bot/internal/common"
	"serotonyl.ru/topup-bot/internal/db/postgres"
)

// PostgresRepository хранит промокоды в таблице promos.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get ищет промокод. code уже нормализован сервисом.
func (r *PostgresRepository) Get(ctx context.Context, code string) (*Promo, error) {
	var (
		p        Promo
		discount string
	)
	err := r.db.QueryRow(ctx,
		`SELECT code, discount::text, created_at FROM promos WHERE code = $1`, code,
	).Scan(&p.Code, &discount, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrPromoNotFound
		}
		return nil, fmt.Errorf("ошибка чтения промокода: %w", postgres.Classify(err))
	}
	if p.Discount, err = decimal.NewFromString(discount); err != nil {
		return nil, fmt.Errorf("некорректная скидка в базе (%s): %w", code, err)
	}
	return &p, nil
}

// Upsert добавляет промокод или меняет скидку существующего.
func (r *PostgresRepository) Upsert(ctx context.Context, code string, discount decimal.Decimal) error {
	query := `
		INSERT INTO promos (code, discount) VALUES ($1, $2::numeric)
		ON CONFLICT (code) DO UPDATE SET discount = EXCLUDED.discount
	`
	if _, err := r.db.Exec(ctx, query, code, discount.String()); err != nil {
		return fmt.Errorf("ошибка сохранения промокода: %w", postgres.Classify(err))
	}
	return nil
}

// List возвращает все промокоды по алфавиту.
func (r *PostgresRepository) List(ctx context.Context) ([]Promo, error) {
	rows, err := r.db.Query(ctx, `SELECT code, discount::text, created_at FROM promos ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения промокодов: %w", postgres.Classify(err))
	}
	defer rows.Close()

	var promos []Promo
	for rows.Next() {
		var (
			p        Promo
			discount string
		)
		if err := rows.Scan(&p.Code, &discount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования промокода: %w", err)
		}
		if p.Discount, err = decimal.NewFromString(discount); err != nil {
			return nil, fmt.Errorf("некорректная скидка в базе (%s): %w", p.Code, err)
		}
		promos = append(promos, p)
	}
	return promos, rows.Err()
}

var _ Repository = (*PostgresRepository)(nil)
