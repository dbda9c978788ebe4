package service

import (
	"context"
	"fmt"
	"regexp"

	"lol-tracker/internal/api"
	"lol-tracker/internal/constants"
	"lol-tracker/internal/domain"
	"lol-tracker/internal/rank"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// SoloQueue is the only queue the tracker ranks on.
const SoloQueue = "RANKED_SOLO_5x5"

var tagPattern = regexp.MustCompile(`^[a-zA-Z0-9]{3,5}$`)

// RankSource is the external rank data API.
type RankSource interface {
	GetAccountByRiotID(ctx context.Context, name, tag string) (*api.AccountResponse, error)
	GetSummonerByPUUID(ctx context.Context, puuid string) (*api.SummonerResponse, error)
	GetLeagueEntries(ctx context.Context, summonerID string) ([]api.LeagueEntry, error)
	GetTopChampions(ctx context.Context, puuid string, n int) ([]string, error)
}

// PlayerStore is the persistence layer for player records.
type PlayerStore interface {
	Create(ctx context.Context, player *domain.Player) error
	Get(ctx context.Context, discordID, serverID string) (*domain.Player, error)
	ListByServer(ctx context.Context, serverID string) ([]domain.Player, error)
	UpdateCurrentRank(ctx context.Context, player *domain.Player) error
	Delete(ctx context.Context, discordID, serverID string) error
}

type TrackerService struct {
	source RankSource
	store  PlayerStore
	logger zerolog.Logger

	// refreshGroup collapses concurrent refreshes of the same server,
	// e.g. overlapping leaderboard pages, into a single pass.
	refreshGroup singleflight.Group
}

func NewTrackerService(source RankSource, store PlayerStore, logger zerolog.Logger) *TrackerService {
	return &TrackerService{source: source, store: store, logger: logger}
}

// Register records a user's League account in a server, snapshotting the
// standing they report as their starting rank. Nothing is persisted until
// every resolution step has succeeded.
func (s *TrackerService) Register(ctx context.Context, discordID, serverID, username, tag, tier, division string, lp int) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	s.logger.Info().
		Str("discord_id", discordID).
		Str("server_id", serverID).
		Str("username", username).
		Str("tag", tag).
		Msg("registering player")

	if !tagPattern.MatchString(tag) {
		return nil, domain.ErrInvalidTag
	}

	if lp < 0 || (!rank.IsApex(tier) && lp > 99) {
		return nil, fmt.Errorf("%w: LP must be between 0 and 99", domain.ErrInvalidRank)
	}

	startValue, err := rank.Value(tier, division, lp)
	if err != nil {
		return nil, err
	}

	account, err := s.source.GetAccountByRiotID(ctx, username, tag)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Str("tag", tag).Msg("failed to resolve account")
		return nil, err
	}

	summoner, err := s.source.GetSummonerByPUUID(ctx, account.Puuid)
	if err != nil {
		s.logger.Error().Err(err).Str("puuid", account.Puuid).Msg("failed to resolve summoner")
		return nil, err
	}

	standing, err := s.soloStanding(ctx, summoner.ID)
	if err != nil {
		return nil, err
	}

	currentValue, err := rank.Value(standing.Tier, standing.Division, standing.LeaguePoints)
	if err != nil {
		return nil, err
	}

	player := &domain.Player{
		DiscordID:       discordID,
		ServerID:        serverID,
		Username:        username,
		Tag:             tag,
		Puuid:           account.Puuid,
		SummonerID:      summoner.ID,
		AccountID:       summoner.AccountID,
		StartTier:       tier,
		StartDivision:   division,
		StartLP:         lp,
		StartValue:      startValue,
		CurrentTier:     standing.Tier,
		CurrentDivision: standing.Division,
		CurrentLP:       standing.LeaguePoints,
		CurrentValue:    currentValue,
		ValueChange:     currentValue - startValue,
	}

	if err := s.store.Create(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("discord_id", discordID).
		Str("server_id", serverID).
		Int("start_value", startValue).
		Int("current_value", currentValue).
		Msg("player registered")
	return player, nil
}

// Unregister removes every record for the (discordID, serverID) pair.
func (s *TrackerService) Unregister(ctx context.Context, discordID, serverID string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.store.Delete(ctx, discordID, serverID); err != nil {
		return err
	}

	s.logger.Info().
		Str("discord_id", discordID).
		Str("server_id", serverID).
		Msg("player unregistered")
	return nil
}

// RefreshServer re-fetches the solo queue standing of every player in the
// server and overwrites their current rank fields. The batch is fail-fast:
// the first record that cannot be refreshed aborts the rest and the error
// is surfaced, but records already refreshed keep their new values.
func (s *TrackerService) RefreshServer(ctx context.Context, serverID string) error {
	_, err, _ := s.refreshGroup.Do(serverID, func() (any, error) {
		return nil, s.refreshServer(ctx, serverID)
	})
	return err
}

func (s *TrackerService) refreshServer(ctx context.Context, serverID string) error {
	players, err := s.store.ListByServer(ctx, serverID)
	if err != nil {
		return err
	}

	s.logger.Debug().Str("server_id", serverID).Int("players", len(players)).Msg("refreshing server ranks")

	for i := range players {
		if err := s.refreshPlayer(ctx, &players[i]); err != nil {
			s.logger.Error().Err(err).
				Str("server_id", serverID).
				Str("discord_id", players[i].DiscordID).
				Msg("rank refresh aborted")
			return err
		}
	}

	return nil
}

func (s *TrackerService) refreshPlayer(ctx context.Context, player *domain.Player) error {
	standing, err := s.soloStanding(ctx, player.SummonerID)
	if err != nil {
		return err
	}

	value, err := rank.Value(standing.Tier, standing.Division, standing.LeaguePoints)
	if err != nil {
		return err
	}

	player.CurrentTier = standing.Tier
	player.CurrentDivision = standing.Division
	player.CurrentLP = standing.LeaguePoints
	player.CurrentValue = value
	player.ValueChange = value - player.StartValue

	return s.store.UpdateCurrentRank(ctx, player)
}

// soloStanding fetches a summoner's league entries and selects the ranked
// solo entry, ignoring every other queue.
func (s *TrackerService) soloStanding(ctx context.Context, summonerID string) (*domain.LeagueStanding, error) {
	entries, err := s.source.GetLeagueEntries(ctx, summonerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRankLookupFailed, err)
	}

	for _, entry := range entries {
		if entry.QueueType != SoloQueue {
			continue
		}
		return &domain.LeagueStanding{
			Queue:        entry.QueueType,
			Tier:         entry.Tier,
			Division:     entry.Rank,
			LeaguePoints: entry.LeaguePoints,
			Wins:         entry.Wins,
			Losses:       entry.Losses,
		}, nil
	}

	return nil, fmt.Errorf("%w: no %s entry", domain.ErrRankLookupFailed, SoloQueue)
}

// PlayerStats bundles everything the stat card shows.
type PlayerStats struct {
	Player       domain.Player
	Standing     domain.LeagueStanding
	TopChampions []string
}

// Stats refreshes a single player's standing and returns it together with
// their most played champions.
func (s *TrackerService) Stats(ctx context.Context, discordID, serverID string) (*PlayerStats, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	player, err := s.store.Get(ctx, discordID, serverID)
	if err != nil {
		return nil, err
	}

	standing, err := s.soloStanding(ctx, player.SummonerID)
	if err != nil {
		return nil, err
	}

	value, err := rank.Value(standing.Tier, standing.Division, standing.LeaguePoints)
	if err != nil {
		return nil, err
	}

	player.CurrentTier = standing.Tier
	player.CurrentDivision = standing.Division
	player.CurrentLP = standing.LeaguePoints
	player.CurrentValue = value
	player.ValueChange = value - player.StartValue

	if err := s.store.UpdateCurrentRank(ctx, player); err != nil {
		return nil, err
	}

	champions, err := s.source.GetTopChampions(ctx, player.Puuid, constants.TopChampionCount)
	if err != nil {
		return nil, err
	}

	return &PlayerStats{
		Player:       *player,
		Standing:     *standing,
		TopChampions: champions,
	}, nil
}
