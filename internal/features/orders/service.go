package orders

import (
	"context"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// DefaultListLimit: сколько последних заказов видит оператор.
const DefaultListLimit = 20

// Repository: хранилище заказов.
type Repository interface {
	Create(ctx context.Context, userID int64, pkg string, price decimal.Decimal) (*Order, error)
	AttachPlayerID(ctx context.Context, userID int64, playerID string) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]Order, error)
	ListAll(ctx context.Context, limit int) ([]Order, error)
	LatestPending(ctx context.Context, userID int64) (*Order, error)
	Aggregate(ctx context.Context) (*Stats, error)
}

// Service: журнал заказов.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create записывает заказ в статусе pending. Цена сохраняется округлённой
// до копеек, как её видит покупатель.
func (s *Service) Create(ctx context.Context, userID int64, pkg string, price decimal.Decimal) (*Order, error) {
	o, err := s.repo.Create(ctx, userID, pkg, price.Round(2))
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"user_id":  userID,
		"order_id": o.ID,
		"package":  pkg,
		"price":    o.Price.StringFixed(2),
	}).Info("Заказ создан")
	return o, nil
}

// AttachPlayerID записывает ID игрока в последний pending-заказ.
// Если такого заказа нет, возвращает false без ошибки.
func (s *Service) AttachPlayerID(ctx context.Context, userID int64, playerID string) (bool, error) {
	return s.repo.AttachPlayerID(ctx, userID, playerID)
}

// ListByUser: история покупателя, старые сначала.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListAll: последние заказы всех покупателей, новые сначала.
func (s *Service) ListAll(ctx context.Context) ([]Order, error) {
	return s.repo.ListAll(ctx, DefaultListLimit)
}

// LatestPending: последний незакрытый заказ или nil.
func (s *Service) LatestPending(ctx context.Context, userID int64) (*Order, error) {
	return s.repo.LatestPending(ctx, userID)
}

// Aggregate: число заказов, выручка и самый популярный пакет.
func (s *Service) Aggregate(ctx context.Context) (*Stats, error) {
	return s.repo.Aggregate(ctx)
}
