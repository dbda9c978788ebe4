package bot

import (
	"context"
	"fmt"
	"strings"

	"lol-tracker/internal/constants"
	"lol-tracker/internal/pagination"
	"lol-tracker/internal/rank"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

const boardPrefix = "board"

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// Every interaction gets a correlation ID so a failing command can
	// be traced through the service logs.
	log := b.logger.With().Str("interaction_id", uuid.New().String()).Logger()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(s, i, log)
	case discordgo.InteractionMessageComponent:
		b.handleComponent(s, i, log)
	}
}

func (b *Bot) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate, log zerolog.Logger) {
	data := i.ApplicationCommandData()
	log.Info().Str("command", data.Name).Str("server_id", i.GuildID).Msg("command received")

	if data.Name == "hello" {
		b.handleHello(s, i)
		return
	}

	if i.GuildID == "" {
		b.respondEphemeral(s, i, "This command only works inside a server.")
		return
	}

	switch data.Name {
	case "register":
		b.handleRegister(s, i, log)
	case "unregister":
		b.handleUnregister(s, i, log)
	case "leaderboard":
		b.handleBoard(s, i, log, "Ranked Leaderboard", b.svc.RankLeaderboard)
	case "improvement":
		b.handleBoard(s, i, log, "Improvement Leaderboard", b.svc.ImprovementLeaderboard)
	case "stats":
		b.handleStats(s, i, log)
	default:
		log.Warn().Str("command", data.Name).Msg("unknown command")
	}
}

func (b *Bot) handleHello(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Hello <@%s>!", invokerID(i)),
		},
	})
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to respond to hello")
	}
}

func (b *Bot) handleRegister(s *discordgo.Session, i *discordgo.InteractionCreate, log zerolog.Logger) {
	if err := b.deferReply(s, i, true); err != nil {
		log.Error().Err(err).Msg("failed to defer register response")
		return
	}

	opts := optionMap(i.ApplicationCommandData())
	username := opts["username"].StringValue()
	tag := opts["tag"].StringValue()
	tier := opts["tier"].StringValue()
	lp := int(opts["lp"].IntValue())
	division := ""
	if opt, ok := opts["division"]; ok {
		division = opt.StringValue()
	}

	player, err := b.svc.Register(context.Background(), invokerID(i), i.GuildID, username, tag, tier, division, lp)
	if err != nil {
		log.Error().Err(err).Msg("register failed")
		b.editReply(s, i, userMessage(err))
		return
	}

	b.editReply(s, i, fmt.Sprintf("Registered **%s#%s** starting at %s.",
		player.Username, player.Tag, rank.Format(player.StartTier, player.StartDivision, player.StartLP)))
}

func (b *Bot) handleUnregister(s *discordgo.Session, i *discordgo.InteractionCreate, log zerolog.Logger) {
	err := b.svc.Unregister(context.Background(), invokerID(i), i.GuildID)
	if err != nil {
		log.Error().Err(err).Msg("unregister failed")
		b.respondEphemeral(s, i, userMessage(err))
		return
	}
	b.respondEphemeral(s, i, "You are no longer registered in this server.")
}

func (b *Bot) handleBoard(s *discordgo.Session, i *discordgo.InteractionCreate, log zerolog.Logger, title string, build func(context.Context, string) ([]string, error)) {
	if err := b.deferReply(s, i, false); err != nil {
		log.Error().Err(err).Msg("failed to defer board response")
		return
	}

	boardID, err := gonanoid.New()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate board id")
		b.editReply(s, i, userMessage(err))
		return
	}

	serverID := i.GuildID
	fetch := func(ctx context.Context, page int) ([]string, int, error) {
		lines, err := build(ctx, serverID)
		if err != nil {
			return nil, 0, err
		}

		total := pagination.PageCount(len(lines), constants.LeaderboardPageSize)
		start := (page - 1) * constants.LeaderboardPageSize
		if start >= len(lines) {
			return nil, total, nil
		}
		end := start + constants.LeaderboardPageSize
		if end > len(lines) {
			end = len(lines)
		}
		return lines[start:end], total, nil
	}

	renderer := &boardRenderer{
		session:     s,
		interaction: i.Interaction,
		title:       title,
		boardID:     boardID,
	}

	ctrl := pagination.New(fetch, renderer, constants.PaginationIdleTimeout, func() {
		b.boards.remove(boardID)
	})
	b.boards.put(boardID, ctrl)

	if err := ctrl.Navigate(context.Background()); err != nil {
		log.Error().Err(err).Str("server_id", serverID).Msg("failed to open leaderboard")
		b.boards.remove(boardID)
		b.editReply(s, i, userMessage(err))
	}
}

func (b *Bot) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate, log zerolog.Logger) {
	customID := i.MessageComponentData().CustomID
	parts := strings.Split(customID, ":")
	if len(parts) != 3 || parts[0] != boardPrefix {
		return
	}
	boardID, direction := parts[1], parts[2]

	ctrl, ok := b.boards.get(boardID)
	if !ok {
		// Session already expired; the buttons are about to disappear.
		_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseDeferredMessageUpdate,
		})
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	}); err != nil {
		log.Error().Err(err).Msg("failed to acknowledge component click")
		return
	}

	var err error
	switch direction {
	case "prev":
		err = ctrl.Previous(context.Background())
	case "next":
		err = ctrl.Next(context.Background())
	}
	if err != nil {
		log.Error().Err(err).Str("board_id", boardID).Str("direction", direction).Msg("page navigation failed")
	}
}

func (b *Bot) handleStats(s *discordgo.Session, i *discordgo.InteractionCreate, log zerolog.Logger) {
	if err := b.deferReply(s, i, false); err != nil {
		log.Error().Err(err).Msg("failed to defer stats response")
		return
	}

	targetID := invokerID(i)
	if opt, ok := optionMap(i.ApplicationCommandData())["user"]; ok {
		targetID = opt.UserValue(s).ID
	}

	stats, err := b.svc.Stats(context.Background(), targetID, i.GuildID)
	if err != nil {
		log.Error().Err(err).Str("target_id", targetID).Msg("stats failed")
		b.editReply(s, i, userMessage(err))
		return
	}

	embed := statsEmbed(stats)
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		log.Error().Err(err).Msg("failed to edit stats response")
	}
}

func (b *Bot) deferReply(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	})
}

func (b *Bot) editReply(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	}); err != nil {
		b.logger.Error().Err(err).Msg("failed to edit interaction response")
	}
}

func (b *Bot) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to respond to interaction")
	}
}

func invokerID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
