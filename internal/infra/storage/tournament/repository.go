package tournament

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SFC-ReservaService/internal/domain"
	"github.com/m04kA/SFC-ReservaService/pkg/psqlbuilder"
	"github.com/m04kA/SFC-ReservaService/pkg/txmanager"
)

// DBExecutor интерфейс для выполнения запросов (*sql.DB или *sql.Tx)
type DBExecutor = txmanager.DBExecutor

// Repository репозиторий для работы с турнирами и командами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория турниров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает турнир
func (r *Repository) Create(ctx context.Context, t *domain.Tournament) (*domain.Tournament, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("tournaments").
		Columns("name", "date_start", "date_end").
		Values(t.Name, t.DateStart, t.DateEnd).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&t.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return t, nil
}

// GetByID получает турнир по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Tournament, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "date_start", "date_end").
		From("tournaments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var t domain.Tournament
	err = executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.Name, &t.DateStart, &t.DateEnd)
	if err == sql.ErrNoRows {
		return nil, ErrTournamentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan tournament: %v", ErrScanRow, err)
	}

	return &t, nil
}

// CreateTeam создает команду турнира
func (r *Repository) CreateTeam(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("teams").
		Columns("tournament_id", "name", "player_count").
		Values(team.TournamentID, team.Name, team.PlayerCount).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateTeam - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&team.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateTeam - execute insert: %v", ErrExecQuery, err)
	}

	return team, nil
}

// GetTeamsByTournament получает команды турнира
func (r *Repository) GetTeamsByTournament(ctx context.Context, tournamentID int64) ([]*domain.Team, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "tournament_id", "name", "player_count").
		From("teams").
		Where(squirrel.Eq{"tournament_id": tournamentID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTeamsByTournament - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTeamsByTournament - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	teams := make([]*domain.Team, 0)
	for rows.Next() {
		var team domain.Team
		if err := rows.Scan(&team.ID, &team.TournamentID, &team.Name, &team.PlayerCount); err != nil {
			return nil, fmt.Errorf("%w: GetTeamsByTournament - scan row: %v", ErrScanRow, err)
		}
		teams = append(teams, &team)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTeamsByTournament - rows error: %v", ErrScanRow, err)
	}

	return teams, nil
}
