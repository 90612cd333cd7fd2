package domain

import "time"

// Tournament is a named round-robin competition. Its matches are backed by a
// single bulk reservation of slots across the date range.
type Tournament struct {
	ID        int64
	Name      string
	DateStart time.Time
	DateEnd   time.Time
}

// Team participates in a tournament
type Team struct {
	ID           int64
	TournamentID int64
	Name         string
	PlayerCount  int
}

// TotalRoundRobinMatches возвращает число матчей турнира "каждый с каждым":
// n * (n - 1) / 2
func TotalRoundRobinMatches(teamCount int) int {
	return teamCount * (teamCount - 1) / 2
}

// MaxSimultaneousMatches возвращает максимум одновременных матчей:
// каждому матчу нужны две команды
func MaxSimultaneousMatches(teamCount int) int {
	return teamCount / 2
}
