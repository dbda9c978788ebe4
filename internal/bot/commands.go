package bot

import (
	"github.com/bwmarrin/discordgo"

	"lol-tracker/internal/rank"
)

func commands() []*discordgo.ApplicationCommand {
	minLP := float64(0)

	tierChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(rank.Tiers))
	for _, tier := range rank.Tiers {
		tierChoices = append(tierChoices, &discordgo.ApplicationCommandOptionChoice{Name: tier, Value: tier})
	}

	divisionChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(rank.Divisions))
	for _, div := range rank.Divisions {
		divisionChoices = append(divisionChoices, &discordgo.ApplicationCommandOptionChoice{Name: div, Value: div})
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        "register",
			Description: "Register your League account and starting rank in this server",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "username",
					Description: "Your Riot ID game name",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "tag",
					Description: "Your Riot ID tag (3-5 letters or digits, without the #)",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "tier",
					Description: "Your current tier",
					Required:    true,
					Choices:     tierChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "lp",
					Description: "Your current LP",
					Required:    true,
					MinValue:    &minLP,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "division",
					Description: "Your current division (omit for Master and above)",
					Required:    false,
					Choices:     divisionChoices,
				},
			},
		},
		{
			Name:        "unregister",
			Description: "Remove your registration from this server",
		},
		{
			Name:        "leaderboard",
			Description: "Show the server ranked leaderboard",
		},
		{
			Name:        "improvement",
			Description: "Show who climbed the most since registering",
		},
		{
			Name:        "stats",
			Description: "Show a player's stat card",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Whose stats to show (defaults to you)",
					Required:    false,
				},
			},
		},
		{
			Name:        "hello",
			Description: "Says hello to you",
		},
	}
}

// optionMap flattens a command's options for lookup by name.
func optionMap(data discordgo.ApplicationCommandInteractionData) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(data.Options))
	for _, opt := range data.Options {
		opts[opt.Name] = opt
	}
	return opts
}
