// Package bot is the Discord surface of the tracker. It owns the gateway
// session, slash command registration, and interaction routing; all rank
// logic lives in the service layer.
package bot

import (
	"context"
	"sync"

	"lol-tracker/internal/config"
	"lol-tracker/internal/pagination"
	"lol-tracker/internal/service"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

type Bot struct {
	session *discordgo.Session
	svc     *service.TrackerService
	logger  zerolog.Logger
	boards  *boardRegistry
}

func New(cfg *config.Config, svc *service.TrackerService, logger zerolog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	return &Bot{
		session: session,
		svc:     svc,
		logger:  logger,
		boards:  newBoardRegistry(),
	}, nil
}

// Start opens the gateway connection and syncs the slash commands once
// the session is ready.
func (b *Bot) Start(ctx context.Context) error {
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onInteractionCreate)

	if err := b.session.Open(); err != nil {
		return err
	}

	b.logger.Info().Msg("gateway connection opened")
	return nil
}

func (b *Bot) Stop(ctx context.Context) error {
	b.logger.Info().Msg("closing gateway connection")
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	synced, err := s.ApplicationCommandBulkOverwrite(r.User.ID, "", commands())
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to sync commands")
		return
	}
	b.logger.Info().Int("count", len(synced)).Str("user", r.User.Username).Msg("commands synced, bot is ready")
}

// boardRegistry tracks live leaderboard pagination sessions by the nanoid
// embedded in their button custom IDs.
type boardRegistry struct {
	mu       sync.Mutex
	sessions map[string]*pagination.Controller[[]string]
}

func newBoardRegistry() *boardRegistry {
	return &boardRegistry{sessions: make(map[string]*pagination.Controller[[]string])}
}

func (r *boardRegistry) put(id string, c *pagination.Controller[[]string]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = c
}

func (r *boardRegistry) get(id string) (*pagination.Controller[[]string], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.sessions[id]
	return c, ok
}

func (r *boardRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
