package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"starboard/models"
	"starboard/services"
	"starboard/usecases/star"
)

var starboardCommandMinThreshold = float64(1)

// starboardCommand is the single /starboard application command; everything
// the bot can do is a subcommand of it.
var starboardCommand = &discordgo.ApplicationCommand{
	Name:        "starboard",
	Description: "Configure and moderate the starboard",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "threshold",
			Description: "Set how many reactions promote a message",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Reactions required for promotion",
					Required:    true,
					MinValue:    &starboardCommandMinThreshold,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "channel",
			Description: "Set the starboard feed channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "Channel crossposts get published to",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "emoji-add",
			Description: "Allow an emoji to count toward promotion",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "emoji",
					Description: "Unicode emoji or custom emoji",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "emoji-remove",
			Description: "Stop an emoji from counting toward promotion",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "emoji",
					Description: "Unicode emoji or custom emoji",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "visibility",
			Description: "Override whether a channel's messages can be promoted",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "Channel to override",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "visible",
					Description: "Whether messages in the channel may be promoted",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "reset-channel",
			Description: "Drop a channel's visibility override",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "Channel to reset",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "overrides",
			Description: "List the guild's channel visibility overrides",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "leaderboard",
			Description: "Show the guild's starboard leaderboard",
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "ignore",
			Description: "Block a message from the starboard",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message_id",
					Description: "ID of the message to block",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "unignore",
			Description: "Unblock a message",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message_id",
					Description: "ID of the message to unblock",
					Required:    true,
				},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "delete",
			Description: "Delete a message's crosspost from the feed channel",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message_id",
					Description: "ID of the promoted source message",
					Required:    true,
				},
			},
		},
	},
}

func registerCommands(session *discordgo.Session, applicationID string) error {
	if _, err := session.ApplicationCommandCreate(applicationID, "", starboardCommand); err != nil {
		return fmt.Errorf("failed to register starboard command: %w", err)
	}
	return nil
}

type commandHandler struct {
	starUseCase            *star.StarUseCase
	guildSettingsService   services.GuildSettingsService
	channelSettingsService services.ChannelSettingsService
}

func newCommandHandler(
	starUseCase *star.StarUseCase,
	guildSettingsService services.GuildSettingsService,
	channelSettingsService services.ChannelSettingsService,
) *commandHandler {
	return &commandHandler{
		starUseCase:            starUseCase,
		guildSettingsService:   guildSettingsService,
		channelSettingsService: channelSettingsService,
	}
}

func (h *commandHandler) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	if data.Name != starboardCommand.Name || i.GuildID == "" {
		return
	}

	sub := data.Options[0]
	content, err := h.dispatch(context.Background(), s, i, sub)
	if err != nil {
		log.Printf("❌ Failed to handle /starboard %s: %v", sub.Name, err)
		content = "Something went wrong, try again later."
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		log.Printf("❌ Failed to respond to /starboard %s: %v", sub.Name, err)
	}
}

func (h *commandHandler) dispatch(
	ctx context.Context,
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	sub *discordgo.ApplicationCommandInteractionDataOption,
) (string, error) {
	switch sub.Name {
	case "threshold":
		amount := int(sub.Options[0].IntValue())
		setting, err := h.guildSettingsService.SetThreshold(ctx, i.GuildID, amount)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Messages now need %d reactions to reach the starboard.", setting.Amount), nil

	case "channel":
		channel := sub.Options[0].ChannelValue(s)
		if _, err := h.guildSettingsService.SetFeedChannel(ctx, i.GuildID, channel.ID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Starboard feed channel set to <#%s>.", channel.ID), nil

	case "emoji-add":
		emoji := sub.Options[0].StringValue()
		if _, err := h.guildSettingsService.AddEmoji(ctx, i.GuildID, emoji); err != nil {
			return "", err
		}
		return fmt.Sprintf("Reactions with %s now count toward the starboard.", emoji), nil

	case "emoji-remove":
		emoji := sub.Options[0].StringValue()
		if _, err := h.guildSettingsService.RemoveEmoji(ctx, i.GuildID, emoji); err != nil {
			return "", err
		}
		return fmt.Sprintf("Reactions with %s no longer count toward the starboard.", emoji), nil

	case "visibility":
		channel := sub.Options[0].ChannelValue(s)
		visible := sub.Options[1].BoolValue()
		if _, err := h.channelSettingsService.SetChannelVisibility(ctx, i.GuildID, channel.ID, visible); err != nil {
			return "", err
		}
		if visible {
			return fmt.Sprintf("Messages in <#%s> can now reach the starboard.", channel.ID), nil
		}
		return fmt.Sprintf("Messages in <#%s> are now hidden from the starboard.", channel.ID), nil

	case "reset-channel":
		channel := sub.Options[0].ChannelValue(s)
		existed, err := h.channelSettingsService.ResetChannel(ctx, channel.ID)
		if err != nil {
			return "", err
		}
		if !existed {
			return fmt.Sprintf("<#%s> had no visibility override.", channel.ID), nil
		}
		return fmt.Sprintf("<#%s> now follows the default visibility rules.", channel.ID), nil

	case "overrides":
		overrides, err := h.channelSettingsService.ListGuildChannelSettings(ctx, i.GuildID)
		if err != nil {
			return "", err
		}
		return formatOverrides(overrides), nil

	case "leaderboard":
		leaderboard, err := h.starUseCase.GetLeaderboard(ctx, i.GuildID)
		if err != nil {
			return "", err
		}
		return formatLeaderboard(leaderboard), nil

	case "ignore":
		messageID := sub.Options[0].StringValue()
		crosspostExists, err := h.starUseCase.IgnoreMessage(ctx, i.ChannelID, messageID)
		if err != nil {
			return "", err
		}
		if crosspostExists {
			return "Message ignored. It already has a starboard post, use /starboard delete to remove it.", nil
		}
		return "Message ignored, it will not reach the starboard.", nil

	case "unignore":
		messageID := sub.Options[0].StringValue()
		wasBlocked, err := h.starUseCase.UnignoreMessage(ctx, i.ChannelID, messageID)
		if err != nil {
			return "", err
		}
		if !wasBlocked {
			return "That message was not ignored.", nil
		}
		return "Message unignored, it can reach the starboard again.", nil

	case "delete":
		messageID := sub.Options[0].StringValue()
		if err := h.starUseCase.DeleteCrosspost(ctx, messageID); err != nil {
			return "", err
		}
		return "Starboard post deleted.", nil
	}

	return "", fmt.Errorf("unknown subcommand: %s", sub.Name)
}

func formatOverrides(overrides []*models.ChannelSetting) string {
	if len(overrides) == 0 {
		return "No channel visibility overrides are set."
	}

	var b strings.Builder
	b.WriteString("**Channel visibility overrides**\n")
	for _, override := range overrides {
		state := "hidden from the starboard"
		if override.Visible {
			state = "always visible to the starboard"
		}
		fmt.Fprintf(&b, "<#%s> is %s\n", override.ChannelID, state)
	}
	return b.String()
}

func formatLeaderboard(leaderboard *star.Leaderboard) string {
	var b strings.Builder
	b.WriteString("**Most starred authors**\n")
	if len(leaderboard.TopAuthors) == 0 {
		b.WriteString("Nobody made it to the starboard yet.\n")
	}
	for rank, author := range leaderboard.TopAuthors {
		fmt.Fprintf(&b, "%d. <@%s> with %d messages\n", rank+1, author.UserID, author.Messages)
	}

	b.WriteString("\n**Top star givers**\n")
	if len(leaderboard.TopGivers) == 0 {
		b.WriteString("No stars given yet.\n")
	}
	for rank, giver := range leaderboard.TopGivers {
		fmt.Fprintf(&b, "%d. <@%s> with %d stars\n", rank+1, giver.UserID, giver.Amount)
	}
	return b.String()
}
