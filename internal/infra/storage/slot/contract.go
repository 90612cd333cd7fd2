package slot

import "github.com/m04kA/SFC-ReservaService/pkg/txmanager"

// DBExecutor интерфейс для выполнения запросов (*sql.DB или *sql.Tx)
type DBExecutor = txmanager.DBExecutor
