package pricing

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("pricing: court not found")

	// ErrCourtTypeNotFound возвращается, когда тип корта не найден
	ErrCourtTypeNotFound = errors.New("pricing: court type not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("pricing: internal error")
)
