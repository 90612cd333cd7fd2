package create_reservation

import (
	"context"

	createReservation "github.com/m04kA/SFC-ReservaService/internal/usecase/create_reservation"
)

type CreateReservationUseCase interface {
	Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error)
}

// Metrics бизнес-счетчики, собираемые при успешном создании
type Metrics interface {
	IncReservationsCreated(status string)
	AddSlotsClaimed(n int)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
