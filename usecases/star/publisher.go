package star

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"starboard/clients"
	"starboard/models"
)

// maxLinkLabelLength is Discord's practical button label limit; longer channel
// names get truncated with an ellipsis.
const maxLinkLabelLength = 68

// publishCrosspost renders the source message into the guild's feed channel
// through the bot's managed webhook and returns the crosspost message ID.
func (u *StarUseCase) publishCrosspost(
	ctx context.Context,
	feedChannelID string,
	event models.ReactionEvent,
) (string, error) {
	message, err := u.discordClient.GetMessage(event.ChannelID, event.MessageID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch source message: %w", err)
	}

	channel, err := u.discordClient.GetChannel(event.ChannelID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch source channel: %w", err)
	}

	webhook, err := u.discordClient.EnsureManagedWebhook(feedChannelID)
	if err != nil {
		return "", fmt.Errorf("failed to ensure feed channel webhook: %w", err)
	}

	params := renderCrosspost(message, channel)
	crosspostID, err := u.discordClient.SendWebhookMessage(webhook, params)
	if err != nil {
		return "", fmt.Errorf("failed to send webhook message: %w", err)
	}

	log.Printf("✅ Published crosspost %s for message %s into channel %s", crosspostID, event.MessageID, feedChannelID)
	return crosspostID, nil
}

// renderCrosspost builds the webhook payload: the source text with attachment
// URLs appended, embeds passed through, authorship attributed and a link
// button back to the original message.
func renderCrosspost(message *clients.DiscordMessage, channel *clients.DiscordChannel) clients.WebhookMessageParams {
	username := message.AuthorDisplayName
	if username == "" {
		username = message.AuthorUsername
	}

	content := message.Content
	if len(message.Attachments) > 0 {
		urls := make([]string, 0, len(message.Attachments))
		for _, attachment := range message.Attachments {
			urls = append(urls, attachment.URL)
		}
		if content != "" {
			content += "\n"
		}
		content += strings.Join(urls, "\n")
	}

	return clients.WebhookMessageParams{
		Username:  username,
		AvatarURL: message.AuthorAvatarURL,
		Content:   content,
		Embeds:    message.Embeds,
		LinkURL: fmt.Sprintf(
			"https://discord.com/channels/%s/%s/%s",
			message.GuildID, message.ChannelID, message.ID,
		),
		LinkLabel: linkLabel(channel.Name),
	}
}

// linkLabel renders "Posted in #channel", truncated to the button label limit.
func linkLabel(channelName string) string {
	label := fmt.Sprintf("Posted in #%s", channelName)
	if utf8.RuneCountInString(label) <= maxLinkLabelLength {
		return label
	}

	runes := []rune(label)
	return string(runes[:maxLinkLabelLength-1]) + "…"
}
