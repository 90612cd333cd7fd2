package finalize_expired

import "context"

type ReservationService interface {
	FinalizeExpired(ctx context.Context) (int, error)
}

// Metrics бизнес-счетчики фоновой финализации
type Metrics interface {
	AddSweepTransitions(n int)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
