package catalog

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("catalog.repository: court not found")

	// ErrCourtTypeNotFound возвращается, когда тип корта не найден
	ErrCourtTypeNotFound = errors.New("catalog.repository: court type not found")

	// ErrScheduleNotFound возвращается, когда горизонт расписания не найден
	ErrScheduleNotFound = errors.New("catalog.repository: schedule not found")

	// ErrServiceNotFound возвращается, когда дополнительная услуга не найдена
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrPaymentMethodNotFound возвращается, когда метод оплаты не найден
	ErrPaymentMethodNotFound = errors.New("catalog.repository: payment method not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
