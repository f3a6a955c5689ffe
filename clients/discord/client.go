package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"starboard/clients"
)

// webhookName is the name given to webhooks the bot creates in feed channels.
const webhookName = "Starboard Reaction"

// DiscordClient implements the clients.DiscordClient interface on top of a
// shared discordgo session.
type DiscordClient struct {
	session *discordgo.Session
	// applicationID identifies webhooks managed by this bot.
	applicationID string
}

func NewDiscordClient(session *discordgo.Session, applicationID string) clients.DiscordClient {
	return &DiscordClient{
		session:       session,
		applicationID: applicationID,
	}
}

func (c *DiscordClient) GetBotUser() (*clients.DiscordUser, error) {
	user, err := c.session.User("@me")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bot user: %w", err)
	}

	return &clients.DiscordUser{
		ID:         user.ID,
		Username:   user.Username,
		GlobalName: user.GlobalName,
		AvatarURL:  user.AvatarURL(""),
		IsBot:      user.Bot,
	}, nil
}

func (c *DiscordClient) GetMessage(channelID, messageID string) (*clients.DiscordMessage, error) {
	message, err := c.session.ChannelMessage(channelID, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch message: %w", err)
	}

	result := &clients.DiscordMessage{
		ID:        message.ID,
		ChannelID: message.ChannelID,
		GuildID:   message.GuildID,
		Content:   message.Content,
		WebhookID: message.WebhookID,
		Embeds:    message.Embeds,
	}

	if message.Author != nil {
		result.AuthorID = message.Author.ID
		result.AuthorUsername = message.Author.Username
		result.AuthorDisplayName = message.Author.GlobalName
		result.AuthorAvatarURL = message.Author.AvatarURL("")
	}

	for _, attachment := range message.Attachments {
		result.Attachments = append(result.Attachments, clients.DiscordAttachment{
			URL:         attachment.URL,
			Filename:    attachment.Filename,
			ContentType: attachment.ContentType,
		})
	}

	for _, reaction := range message.Reactions {
		if reaction.Emoji == nil {
			continue
		}
		result.Reactions = append(result.Reactions, clients.DiscordReaction{
			EmojiID:   reaction.Emoji.ID,
			EmojiName: reaction.Emoji.Name,
			Count:     reaction.Count,
		})
	}

	return result, nil
}

func (c *DiscordClient) DeleteMessage(channelID, messageID string) error {
	if err := c.session.ChannelMessageDelete(channelID, messageID); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

func (c *DiscordClient) GetChannel(channelID string) (*clients.DiscordChannel, error) {
	channel, err := c.session.Channel(channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch channel: %w", err)
	}

	isText := channel.Type == discordgo.ChannelTypeGuildText ||
		channel.Type == discordgo.ChannelTypeGuildNews

	return &clients.DiscordChannel{
		ID:      channel.ID,
		GuildID: channel.GuildID,
		Name:    channel.Name,
		IsText:  isText,
	}, nil
}

// IsChannelPubliclyVisible reports whether the @everyone role can both view
// the channel and send messages in it. This is the default eligibility
// heuristic for channels without an explicit visibility override.
func (c *DiscordClient) IsChannelPubliclyVisible(channelID string) (bool, error) {
	channel, err := c.session.Channel(channelID)
	if err != nil {
		return false, fmt.Errorf("failed to fetch channel: %w", err)
	}

	if channel.Type != discordgo.ChannelTypeGuildText && channel.Type != discordgo.ChannelTypeGuildNews {
		return false, nil
	}

	roles, err := c.session.GuildRoles(channel.GuildID)
	if err != nil {
		return false, fmt.Errorf("failed to fetch guild roles: %w", err)
	}

	// The @everyone role shares its ID with the guild.
	var permissions int64
	for _, role := range roles {
		if role.ID == channel.GuildID {
			permissions = role.Permissions
			break
		}
	}

	for _, overwrite := range channel.PermissionOverwrites {
		if overwrite.Type == discordgo.PermissionOverwriteTypeRole && overwrite.ID == channel.GuildID {
			permissions &^= overwrite.Deny
			permissions |= overwrite.Allow
		}
	}

	canView := permissions&discordgo.PermissionViewChannel != 0
	canSend := permissions&discordgo.PermissionSendMessages != 0
	return canView && canSend, nil
}

// EnsureManagedWebhook returns the bot's webhook in the channel, creating one
// only when none exists yet.
func (c *DiscordClient) EnsureManagedWebhook(channelID string) (*clients.DiscordWebhook, error) {
	webhooks, err := c.session.ChannelWebhooks(channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channel webhooks: %w", err)
	}

	for _, webhook := range webhooks {
		if webhook.ApplicationID == c.applicationID {
			return &clients.DiscordWebhook{
				ID:        webhook.ID,
				Token:     webhook.Token,
				ChannelID: webhook.ChannelID,
			}, nil
		}
	}

	created, err := c.session.WebhookCreate(channelID, webhookName, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook: %w", err)
	}

	return &clients.DiscordWebhook{
		ID:        created.ID,
		Token:     created.Token,
		ChannelID: created.ChannelID,
	}, nil
}

func (c *DiscordClient) SendWebhookMessage(
	webhook *clients.DiscordWebhook,
	params clients.WebhookMessageParams,
) (string, error) {
	webhookParams := &discordgo.WebhookParams{
		Username:  params.Username,
		AvatarURL: params.AvatarURL,
		Content:   params.Content,
		Embeds:    params.Embeds,
		// Never re-ping anyone mentioned in the source message.
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}

	if params.LinkURL != "" {
		webhookParams.Components = []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Style: discordgo.LinkButton,
						Label: params.LinkLabel,
						URL:   params.LinkURL,
						Emoji: &discordgo.ComponentEmoji{Name: "🔗"},
					},
				},
			},
		}
	}

	message, err := c.session.WebhookExecute(webhook.ID, webhook.Token, true, webhookParams)
	if err != nil {
		return "", fmt.Errorf("failed to execute webhook: %w", err)
	}
	if message == nil {
		return "", fmt.Errorf("webhook execution returned no message")
	}

	return message.ID, nil
}

func (c *DiscordClient) IsOwnWebhook(webhookID string) (bool, error) {
	webhook, err := c.session.Webhook(webhookID)
	if err != nil {
		return false, fmt.Errorf("failed to fetch webhook: %w", err)
	}
	return webhook.ApplicationID == c.applicationID, nil
}

func (c *DiscordClient) AddReaction(channelID, messageID, emojiID string) error {
	if err := c.session.MessageReactionAdd(channelID, messageID, emojiID); err != nil {
		return fmt.Errorf("failed to add reaction: %w", err)
	}
	return nil
}

func (c *DiscordClient) RemoveOwnReaction(channelID, messageID, emojiID string) error {
	if err := c.session.MessageReactionRemove(channelID, messageID, emojiID, "@me"); err != nil {
		return fmt.Errorf("failed to remove reaction: %w", err)
	}
	return nil
}
