package create_reservation

import "errors"

var (
	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("create_reservation: customer not found")

	// ErrCourtNotFound возвращается, когда корт не найден или неактивен
	ErrCourtNotFound = errors.New("create_reservation: court not found")

	// ErrScheduleNotFound возвращается, когда горизонт расписания не найден
	ErrScheduleNotFound = errors.New("create_reservation: schedule not found")

	// ErrPaymentMethodNotFound возвращается, когда метод оплаты не найден
	ErrPaymentMethodNotFound = errors.New("create_reservation: payment method not found")

	// ErrInvalidDate возвращается, когда дата резервации в прошлом
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrSlotNotAvailable возвращается, когда хотя бы один запрошенный слот занят.
	// Проверка выполняется дважды: на этапе валидации и повторно при записи,
	// внутри сериализуемой транзакции
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
