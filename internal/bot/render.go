package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lol-tracker/internal/domain"
	"lol-tracker/internal/pagination"
	"lol-tracker/internal/rank"
	"lol-tracker/internal/service"

	"github.com/bwmarrin/discordgo"
)

const embedColor = 0x0a96de

// boardRenderer maps pagination pages onto the deferred interaction
// response that opened the leaderboard.
type boardRenderer struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
	title       string
	boardID     string
}

func (r *boardRenderer) ShowPage(ctx context.Context, lines []string, nav pagination.Nav) error {
	description := strings.Join(lines, "\n")
	if description == "" {
		description = "No one is registered in this server yet."
	}

	embed := &discordgo.MessageEmbed{
		Title:       r.title,
		Description: description,
		Color:       embedColor,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d/%d", nav.Index, nav.Total),
		},
	}

	components := []discordgo.MessageComponent{}
	if nav.ShowControls {
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "<",
					Style:    discordgo.PrimaryButton,
					CustomID: fmt.Sprintf("%s:%s:prev", boardPrefix, r.boardID),
					Disabled: !nav.PrevEnabled,
				},
				discordgo.Button{
					Label:    ">",
					Style:    discordgo.PrimaryButton,
					CustomID: fmt.Sprintf("%s:%s:next", boardPrefix, r.boardID),
					Disabled: !nav.NextEnabled,
				},
			},
		})
	}

	_, err := r.session.InteractionResponseEdit(r.interaction, &discordgo.WebhookEdit{
		Embeds:     &[]*discordgo.MessageEmbed{embed},
		Components: &components,
	})
	return err
}

func (r *boardRenderer) RemoveControls(ctx context.Context) error {
	components := []discordgo.MessageComponent{}
	_, err := r.session.InteractionResponseEdit(r.interaction, &discordgo.WebhookEdit{
		Components: &components,
	})
	return err
}

func statsEmbed(stats *service.PlayerStats) *discordgo.MessageEmbed {
	p := stats.Player

	delta := fmt.Sprintf("%d LP", p.ValueChange)
	if p.ValueChange > 0 {
		delta = fmt.Sprintf("+%d LP", p.ValueChange)
	}

	champions := strings.Join(stats.TopChampions, ", ")
	if champions == "" {
		champions = "No mastery data yet"
	}

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s#%s", p.Username, p.Tag),
		Color: embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Current Rank",
				Value:  rank.Format(p.CurrentTier, p.CurrentDivision, p.CurrentLP),
				Inline: true,
			},
			{
				Name:   "Starting Rank",
				Value:  rank.Format(p.StartTier, p.StartDivision, p.StartLP),
				Inline: true,
			},
			{
				Name:   "Progress",
				Value:  delta,
				Inline: true,
			},
			{
				Name:   "Solo Queue Record",
				Value:  fmt.Sprintf("%dW / %dL", stats.Standing.Wins, stats.Standing.Losses),
				Inline: true,
			},
			{
				Name:   "Most Played Champions",
				Value:  champions,
				Inline: true,
			},
		},
	}
}

// userMessage converts a surfaced error into the reply shown to the user.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidTag):
		return "That tag doesn't look right. Tags are 3-5 letters or digits, without the #."
	case errors.Is(err, domain.ErrInvalidRank):
		return "That rank isn't valid. Check the tier, division, and LP you entered."
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return "You are already registered in this server."
	case errors.Is(err, domain.ErrNotRegistered):
		return "You are not registered in this server. Use /register first."
	case errors.Is(err, domain.ErrRankLookupFailed):
		return "Couldn't fetch ranked solo queue data. Make sure the account has played ranked solo this season."
	case errors.Is(err, domain.ErrLookupFailed):
		return "Couldn't reach the Riot API. Try again in a moment."
	default:
		return "Something went wrong. Try again in a moment."
	}
}
