package tournament

import "errors"

var (
	// ErrTournamentNotFound возвращается, когда турнир не найден
	ErrTournamentNotFound = errors.New("tournament.repository: tournament not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("tournament.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("tournament.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("tournament.repository: failed to scan row")
)
