package postgres

import (
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"serotonyl.ru/topup-bot/internal/common"
)

// Classify приводит ошибку драйвера к таксономии бота.
// Ошибки соединения (класс 08, остановка сервера, отказ при dial) превращаются
// в common.ErrStoreUnavailable с сохранением исходной ошибки в цепочке.
// Остальные ошибки возвращаются как есть.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, common.ErrStoreUnavailable) {
		return err
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgerrcode.IsConnectionException(pgErr.Code) || pgerrcode.IsOperatorIntervention(pgErr.Code) {
			return fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
		}
		return err
	}

	if isConnectionError(err) {
		return fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
	}
	return err
}

// isConnectionError: сетевая ошибка сокета или запрос, который не успел
// уйти на сервер.
func isConnectionError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) ||
		pgconn.SafeToRetry(err)
}
