package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	// LeaderboardPageSize is the number of entries rendered per page.
	LeaderboardPageSize = 10

	// PaginationIdleTimeout is how long a leaderboard keeps its
	// navigation buttons without input before they are removed.
	PaginationIdleTimeout = 2 * time.Minute
)

const (
	TopChampionCount = 3
)

const (
	ShutdownTimeout = 5 * time.Second
)
