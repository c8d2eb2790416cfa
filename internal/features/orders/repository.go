package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"serotonyl.ru/topup-bot/internal/db/postgres"
)

// PostgresRepository хранит заказы в таблице orders.
// Цена передаётся и читается строкой, чтобы NUMERIC не терял точность.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const orderColumns = `id, user_id, package, price::text, player_id, status, created_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o     Order
		price string
	)
	if err := row.Scan(&o.ID, &o.UserID, &o.Package, &price, &o.PlayerID, &o.Status, &o.CreatedAt); err != nil {
		return nil, err
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("некорректная цена заказа %d: %w", o.ID, err)
	}
	o.Price = p
	return &o, nil
}

func (r *PostgresRepository) Create(ctx context.Context, userID int64, pkg string, price decimal.Decimal) (*Order, error) {
	query := `
		INSERT INTO orders (user_id, package, price, status)
		VALUES ($1, $2, $3::numeric, $4)
		RETURNING ` + orderColumns
	o, err := scanOrder(r.db.QueryRow(ctx, query, userID, pkg, price.StringFixed(2), StatusPending))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания заказа: %w", postgres.Classify(err))
	}
	return o, nil
}

// AttachPlayerID обновляет только последний pending-заказ пользователя.
func (r *PostgresRepository) AttachPlayerID(ctx context.Context, userID int64, playerID string) (bool, error) {
	query := `
		UPDATE orders SET player_id = $2
		WHERE id = (
			SELECT id FROM orders
			WHERE user_id = $1 AND status = $3
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		)
	`
	tag, err := r.db.Exec(ctx, query, userID, playerID, StatusPending)
	if err != nil {
		return false, fmt.Errorf("ошибка записи ID игрока: %w", postgres.Classify(err))
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at, id`, userID)
}

func (r *PostgresRepository) ListAll(ctx context.Context, limit int) ([]Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения заказов: %w", postgres.Classify(err))
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования заказа: %w", err)
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// LatestPending: нет заказа, вернёт (nil, nil).
func (r *PostgresRepository) LatestPending(ctx context.Context, userID int64) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE user_id = $1 AND status = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1`
	o, err := scanOrder(r.db.QueryRow(ctx, query, userID, StatusPending))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка чтения заказа: %w", postgres.Classify(err))
	}
	return o, nil
}

// Aggregate: при равной популярности побеждает первая строка после ORDER BY ... LIMIT 1.
func (r *PostgresRepository) Aggregate(ctx context.Context) (*Stats, error) {
	var (
		st      Stats
		revenue string
	)
	err := r.db.QueryRow(ctx, `SELECT COUNT(*), COALESCE(SUM(price), 0)::text FROM orders`).Scan(&st.Count, &revenue)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчёта заказов: %w", postgres.Classify(err))
	}
	if st.Revenue, err = decimal.NewFromString(revenue); err != nil {
		return nil, fmt.Errorf("некорректная выручка: %w", err)
	}
	if st.Count == 0 {
		return &st, nil
	}

	err = r.db.QueryRow(ctx, `
		SELECT package, COUNT(*) AS cnt FROM orders
		GROUP BY package
		ORDER BY cnt DESC
		LIMIT 1
	`).Scan(&st.Popular, &st.PopularCount)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчёта популярного пакета: %w", postgres.Classify(err))
	}
	return &st, nil
}

var _ Repository = (*PostgresRepository)(nil)
