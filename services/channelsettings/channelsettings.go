package channelsettings

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"

	"starboard/db"
	"starboard/models"
)

type ChannelSettingsService struct {
	channelSettingsRepo *db.PostgresChannelSettingsRepository
}

func NewChannelSettingsService(repo *db.PostgresChannelSettingsRepository) *ChannelSettingsService {
	return &ChannelSettingsService{channelSettingsRepo: repo}
}

func (s *ChannelSettingsService) GetChannelSetting(
	ctx context.Context,
	channelID string,
) (mo.Option[*models.ChannelSetting], error) {
	log.Printf("📋 Starting to get channel setting for channel: %s", channelID)
	if channelID == "" {
		return mo.None[*models.ChannelSetting](), fmt.Errorf("channel ID cannot be empty")
	}

	maybeSetting, err := s.channelSettingsRepo.GetChannelSetting(ctx, channelID)
	if err != nil {
		return mo.None[*models.ChannelSetting](), fmt.Errorf("failed to get channel setting: %w", err)
	}

	log.Printf("📋 Completed successfully - retrieved channel setting for channel: %s", channelID)
	return maybeSetting, nil
}

// SetChannelVisibility records an explicit visibility override for the channel,
// replacing any previous override.
func (s *ChannelSettingsService) SetChannelVisibility(
	ctx context.Context,
	guildID, channelID string,
	visible bool,
) (*models.ChannelSetting, error) {
	log.Printf("📋 Starting to set visibility %t for channel: %s", visible, channelID)
	if guildID == "" {
		return nil, fmt.Errorf("guild ID cannot be empty")
	}
	if channelID == "" {
		return nil, fmt.Errorf("channel ID cannot be empty")
	}

	setting, err := s.channelSettingsRepo.UpsertChannelSetting(ctx, guildID, channelID, visible)
	if err != nil {
		return nil, fmt.Errorf("failed to set channel visibility: %w", err)
	}

	log.Printf("📋 Completed successfully - set visibility %t for channel: %s", visible, channelID)
	return setting, nil
}

// ResetChannel removes the channel's visibility override so eligibility falls
// back to the permission heuristic. Returns false when no override existed.
func (s *ChannelSettingsService) ResetChannel(ctx context.Context, channelID string) (bool, error) {
	log.Printf("📋 Starting to reset channel setting for channel: %s", channelID)
	if channelID == "" {
		return false, fmt.Errorf("channel ID cannot be empty")
	}

	removed, err := s.channelSettingsRepo.DeleteChannelSetting(ctx, channelID)
	if err != nil {
		return false, fmt.Errorf("failed to reset channel setting: %w", err)
	}

	log.Printf("📋 Completed successfully - reset channel setting for channel: %s (existed: %t)", channelID, removed)
	return removed, nil
}

func (s *ChannelSettingsService) ListGuildChannelSettings(
	ctx context.Context,
	guildID string,
) ([]*models.ChannelSetting, error) {
	log.Printf("📋 Starting to list channel settings for guild: %s", guildID)
	if guildID == "" {
		return nil, fmt.Errorf("guild ID cannot be empty")
	}

	settings, err := s.channelSettingsRepo.ListChannelSettingsByGuild(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channel settings: %w", err)
	}

	log.Printf("📋 Completed successfully - listed %d channel settings for guild: %s", len(settings), guildID)
	return settings, nil
}
