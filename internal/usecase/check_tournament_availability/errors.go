package check_tournament_availability

import "errors"

var (
	// ErrCourtTypeNotFound возвращается, когда тип корта не найден
	ErrCourtTypeNotFound = errors.New("check_tournament_availability: court type not found")

	// ErrInvalidDate возвращается при некорректном окне дат
	ErrInvalidDate = errors.New("check_tournament_availability: invalid tournament dates")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_tournament_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_tournament_availability: internal error")
)
