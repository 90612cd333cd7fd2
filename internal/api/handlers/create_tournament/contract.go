package create_tournament

import (
	"context"

	createTournament "github.com/m04kA/SFC-ReservaService/internal/usecase/create_tournament"
)

type CreateTournamentUseCase interface {
	Execute(ctx context.Context, req *createTournament.Request) (*createTournament.Response, error)
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
