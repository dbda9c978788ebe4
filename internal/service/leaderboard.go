package service

import (
	"context"
	"fmt"
	"sort"

	"lol-tracker/internal/constants"
	"lol-tracker/internal/domain"
	"lol-tracker/internal/rank"
)

// RankLeaderboard refreshes every player in the server and returns one
// display line per player, best current rank first. Ties keep retrieval
// order. Lines are rebuilt from scratch on every call.
func (s *TrackerService) RankLeaderboard(ctx context.Context, serverID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	players, err := s.refreshed(ctx, serverID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(players, func(i, j int) bool {
		return players[i].CurrentValue > players[j].CurrentValue
	})

	lines := make([]string, 0, len(players))
	for i, p := range players {
		lines = append(lines, fmt.Sprintf("**%d. %s** %s",
			i+1, p.Username, rank.Format(p.CurrentTier, p.CurrentDivision, p.CurrentLP)))
	}
	return lines, nil
}

// ImprovementLeaderboard is ordered by value gained since registration.
// Positive deltas render with an explicit plus sign; zero and negative
// deltas render the bare number.
func (s *TrackerService) ImprovementLeaderboard(ctx context.Context, serverID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	players, err := s.refreshed(ctx, serverID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(players, func(i, j int) bool {
		return players[i].ValueChange > players[j].ValueChange
	})

	lines := make([]string, 0, len(players))
	for i, p := range players {
		lines = append(lines, fmt.Sprintf("**%d. %s** %s (%s LP)",
			i+1, p.Username, rank.Format(p.CurrentTier, p.CurrentDivision, p.CurrentLP),
			formatDelta(p.ValueChange)))
	}
	return lines, nil
}

func (s *TrackerService) refreshed(ctx context.Context, serverID string) ([]domain.Player, error) {
	if err := s.RefreshServer(ctx, serverID); err != nil {
		return nil, err
	}
	return s.store.ListByServer(ctx, serverID)
}

func formatDelta(change int) string {
	if change > 0 {
		return fmt.Sprintf("+%d", change)
	}
	return fmt.Sprintf("%d", change)
}
