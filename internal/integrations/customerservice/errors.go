package customerservice

import "errors"

var (
	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("customerservice: customer not found")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса клиентов
	ErrInvalidResponse = errors.New("customerservice: invalid response")

	// ErrServiceDegraded возвращается при недоступности сервиса клиентов
	ErrServiceDegraded = errors.New("customerservice: service unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("customerservice: internal error")
)
