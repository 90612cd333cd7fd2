package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда резервация не найдена
	ErrReservationNotFound = errors.New("reservations: reservation not found")

	// ErrInvalidState возвращается, когда операция недопустима в текущем
	// статусе резервации (отмена не-pendiente, правка суммы после оплаты,
	// любое изменение терминальной резервации)
	ErrInvalidState = errors.New("reservations: operation not permitted in current state")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reservations: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations: internal error")
)
