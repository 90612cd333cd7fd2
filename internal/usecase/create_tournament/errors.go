package create_tournament

import "errors"

var (
	// ErrCustomerNotFound возвращается, когда организатор не найден
	ErrCustomerNotFound = errors.New("create_tournament: customer not found")

	// ErrCourtTypeNotFound возвращается, когда тип корта не найден
	ErrCourtTypeNotFound = errors.New("create_tournament: court type not found")

	// ErrPaymentMethodNotFound возвращается, когда метод оплаты не найден
	ErrPaymentMethodNotFound = errors.New("create_tournament: payment method not found")

	// ErrInvalidDate возвращается, когда дата начала турнира в прошлом
	ErrInvalidDate = errors.New("create_tournament: invalid tournament dates")

	// ErrInvalidMatchesPerDay возвращается, когда запрошенное число матчей в день
	// превышает физическую вместимость площадки для данного числа команд
	ErrInvalidMatchesPerDay = errors.New("create_tournament: matches per day exceeds capacity")

	// ErrDateRangeTooShort возвращается, когда окно дат не вмещает все матчи
	// при заданном темпе
	ErrDateRangeTooShort = errors.New("create_tournament: date range is too short")

	// ErrInsufficientSlots возвращается, когда свободных слотов в окне дат
	// меньше, чем матчей в турнире. Частичное бронирование не выполняется
	ErrInsufficientSlots = errors.New("create_tournament: not enough available slots")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_tournament: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_tournament: internal error")
)
