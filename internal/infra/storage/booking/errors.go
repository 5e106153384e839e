package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrStateChanged возвращается, когда состояние бронирования изменилось параллельно
	ErrStateChanged = errors.New("booking.repository: booking state changed concurrently")

	// ErrLockNotInTransaction возвращается при попытке взять блокировку вне транзакции
	ErrLockNotInTransaction = errors.New("booking.repository: box lock requires a transaction")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrEncodeAdditions возвращается, когда не удалось сериализовать дополнительные услуги
	ErrEncodeAdditions = errors.New("booking.repository: failed to encode additions")
)
