package fx

import (
	"lol-tracker/internal/api"
	"lol-tracker/internal/bot"
	"lol-tracker/internal/config"
	"lol-tracker/internal/database"
	"lol-tracker/internal/logger"
	"lol-tracker/internal/repository"
	"lol-tracker/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// ProvideTracker binds the concrete API client and repository to the
// service's collaborator interfaces.
func ProvideTracker(riot *api.RiotClient, repo *repository.PlayerRepository, log zerolog.Logger) *service.TrackerService {
	return service.NewTrackerService(riot, repo, log)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	// api client
	fx.Provide(api.NewRiotClient),
	// svc
	fx.Provide(ProvideTracker),
	// discord surface
	fx.Provide(bot.New),
)
