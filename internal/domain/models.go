package domain

import (
	"time"
)

// Player is one registration of a Discord user's League account in one
// Discord server. The (DiscordID, ServerID) pair is unique.
type Player struct {
	DiscordID string
	ServerID  string

	// Riot identifiers resolved at registration time.
	Username   string
	Tag        string
	Puuid      string
	SummonerID string
	AccountID  string

	// Snapshot taken at registration. StartValue is never recomputed.
	StartTier     string
	StartDivision string
	StartLP       int
	StartValue    int

	// Latest known standing, overwritten on refresh.
	CurrentTier     string
	CurrentDivision string
	CurrentLP       int
	CurrentValue    int

	// ValueChange = CurrentValue - StartValue.
	ValueChange int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeagueStanding is one queue's entry from the league endpoint.
type LeagueStanding struct {
	Queue        string
	Tier         string
	Division     string
	LeaguePoints int
	Wins         int
	Losses       int
}
