package check_tournament_availability

import (
	"context"

	checkAvailability "github.com/m04kA/SFC-ReservaService/internal/usecase/check_tournament_availability"
)

type CheckAvailabilityUseCase interface {
	Execute(ctx context.Context, req *checkAvailability.Request) (*checkAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
