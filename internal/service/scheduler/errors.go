package scheduler

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных параметрах подбора
	ErrInvalidInput = errors.New("scheduler: invalid input")

	// ErrInternal возвращается при внутренних ошибках планировщика
	ErrInternal = errors.New("scheduler: internal error")
)
