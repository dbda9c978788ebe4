package main

import (
	"context"
	"database/sql"

	"lol-tracker/internal/bot"
	fxmodules "lol-tracker/internal/fx"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runBot),
	).Run()
}

func runBot(
	lc fx.Lifecycle,
	b *bot.Bot,
	db *sql.DB,
	logger zerolog.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info().Msg("starting bot")
			return b.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			if err := b.Stop(ctx); err != nil {
				logger.Warn().Err(err).Msg("error closing gateway connection")
			}

			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
				return err
			}

			logger.Info().Msg("bot stopped gracefully")
			return nil
		},
	})
}
