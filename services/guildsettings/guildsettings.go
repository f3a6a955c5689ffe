package guildsettings

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"slices"

	lru "github.com/hashicorp/golang-lru"
	"github.com/samber/mo"

	"starboard/db"
	"starboard/models"
)

// customEmojiPattern matches a custom emoji either as a raw snowflake ID or as
// a full mention like <:party:123456789012345678>.
var customEmojiPattern = regexp.MustCompile(`^(?:<a?:\w+:)?(\d{17,20})>?$`)

type GuildSettingsService struct {
	settingsRepo *db.PostgresGuildSettingsRepository
	// cache holds resolved guild settings keyed by guild ID. nil when caching
	// is disabled.
	cache *lru.ARCCache
}

// NewGuildSettingsService creates the service with an ARC cache of the given
// size. A size of zero or less disables caching.
func NewGuildSettingsService(repo *db.PostgresGuildSettingsRepository, cacheSize int) (*GuildSettingsService, error) {
	service := &GuildSettingsService{settingsRepo: repo}

	if cacheSize > 0 {
		cache, err := lru.NewARC(cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create settings cache: %w", err)
		}
		service.cache = cache
	}

	return service, nil
}

func (s *GuildSettingsService) GetGuildSettings(
	ctx context.Context,
	guildID string,
) (mo.Option[*models.GuildSetting], error) {
	log.Printf("📋 Starting to get guild settings for guild: %s", guildID)
	if guildID == "" {
		return mo.None[*models.GuildSetting](), fmt.Errorf("guild ID cannot be empty")
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(guildID); ok {
			log.Printf("📋 Completed successfully - guild settings served from cache: %s", guildID)
			return mo.Some(cached.(*models.GuildSetting)), nil
		}
	}

	maybeSetting, err := s.settingsRepo.GetGuildSetting(ctx, guildID)
	if err != nil {
		return mo.None[*models.GuildSetting](), fmt.Errorf("failed to get guild settings: %w", err)
	}
	if !maybeSetting.IsPresent() {
		log.Printf("📋 Completed successfully - no guild settings for guild: %s", guildID)
		return mo.None[*models.GuildSetting](), nil
	}

	setting := maybeSetting.MustGet()
	if s.cache != nil {
		s.cache.Add(guildID, setting)
	}

	log.Printf("📋 Completed successfully - retrieved guild settings for guild: %s", guildID)
	return mo.Some(setting), nil
}

func (s *GuildSettingsService) SetThreshold(
	ctx context.Context,
	guildID string,
	amount int,
) (*models.GuildSetting, error) {
	log.Printf("📋 Starting to set threshold to %d for guild: %s", amount, guildID)
	if guildID == "" {
		return nil, fmt.Errorf("guild ID cannot be empty")
	}
	if amount < 1 {
		return nil, fmt.Errorf("threshold must be at least 1, got %d", amount)
	}

	setting, err := s.settingsRepo.UpsertAmount(ctx, guildID, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to set threshold: %w", err)
	}
	s.invalidate(guildID)

	log.Printf("📋 Completed successfully - set threshold to %d for guild: %s", amount, guildID)
	return setting, nil
}

func (s *GuildSettingsService) SetFeedChannel(
	ctx context.Context,
	guildID, channelID string,
) (*models.GuildSetting, error) {
	log.Printf("📋 Starting to set feed channel %s for guild: %s", channelID, guildID)
	if guildID == "" {
		return nil, fmt.Errorf("guild ID cannot be empty")
	}
	if channelID == "" {
		return nil, fmt.Errorf("channel ID cannot be empty")
	}

	setting, err := s.settingsRepo.UpsertFeedChannel(ctx, guildID, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to set feed channel: %w", err)
	}
	s.invalidate(guildID)

	log.Printf("📋 Completed successfully - set feed channel %s for guild: %s", channelID, guildID)
	return setting, nil
}

// AddEmoji adds an emoji to the guild's allow list. Custom emoji (snowflake IDs
// or full <:name:id> mentions) and unicode emoji are stored in separate sets.
// Adding an emoji that is already allowed is a no-op.
func (s *GuildSettingsService) AddEmoji(
	ctx context.Context,
	guildID, emoji string,
) (*models.GuildSetting, error) {
	log.Printf("📋 Starting to add emoji %q for guild: %s", emoji, guildID)
	if guildID == "" {
		return nil, fmt.Errorf("guild ID cannot be empty")
	}
	if emoji == "" {
		return nil, fmt.Errorf("emoji cannot be empty")
	}

	setting, err := s.ensureSettings(ctx, guildID)
	if err != nil {
		return nil, err
	}

	custom := slices.Clone([]string(setting.CustomEmoji))
	unicode := slices.Clone([]string(setting.UnicodeEmoji))

	if id, ok := parseCustomEmoji(emoji); ok {
		if slices.Contains(custom, id) {
			log.Printf("📋 Completed successfully - emoji %q already allowed for guild: %s", emoji, guildID)
			return setting, nil
		}
		if len(custom) >= models.MaxEmojiPerKind {
			return nil, fmt.Errorf("custom emoji limit of %d reached", models.MaxEmojiPerKind)
		}
		custom = append(custom, id)
	} else {
		if slices.Contains(unicode, emoji) {
			log.Printf("📋 Completed successfully - emoji %q already allowed for guild: %s", emoji, guildID)
			return setting, nil
		}
		if len(unicode) >= models.MaxEmojiPerKind {
			return nil, fmt.Errorf("unicode emoji limit of %d reached", models.MaxEmojiPerKind)
		}
		unicode = append(unicode, emoji)
	}

	updated, err := s.settingsRepo.UpdateEmoji(ctx, guildID, custom, unicode)
	if err != nil {
		return nil, fmt.Errorf("failed to add emoji: %w", err)
	}
	s.invalidate(guildID)

	log.Printf("📋 Completed successfully - added emoji %q for guild: %s", emoji, guildID)
	return updated, nil
}

// RemoveEmoji removes an emoji from the guild's allow list. Removing an emoji
// that was never allowed is a no-op.
func (s *GuildSettingsService) RemoveEmoji(
	ctx context.Context,
	guildID, emoji string,
) (*models.GuildSetting, error) {
	log.Printf("📋 Starting to remove emoji %q for guild: %s", emoji, guildID)
	if guildID == "" {
		return nil, fmt.Errorf("guild ID cannot be empty")
	}
	if emoji == "" {
		return nil, fmt.Errorf("emoji cannot be empty")
	}

	maybeSetting, err := s.settingsRepo.GetGuildSetting(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild settings: %w", err)
	}
	if !maybeSetting.IsPresent() {
		return nil, fmt.Errorf("guild setting not found")
	}
	setting := maybeSetting.MustGet()

	custom := slices.Clone([]string(setting.CustomEmoji))
	unicode := slices.Clone([]string(setting.UnicodeEmoji))

	var changed bool
	if id, ok := parseCustomEmoji(emoji); ok {
		if i := slices.Index(custom, id); i >= 0 {
			custom = slices.Delete(custom, i, i+1)
			changed = true
		}
	} else if i := slices.Index(unicode, emoji); i >= 0 {
		unicode = slices.Delete(unicode, i, i+1)
		changed = true
	}

	if !changed {
		log.Printf("📋 Completed successfully - emoji %q was not allowed for guild: %s", emoji, guildID)
		return setting, nil
	}

	updated, err := s.settingsRepo.UpdateEmoji(ctx, guildID, custom, unicode)
	if err != nil {
		return nil, fmt.Errorf("failed to remove emoji: %w", err)
	}
	s.invalidate(guildID)

	log.Printf("📋 Completed successfully - removed emoji %q for guild: %s", emoji, guildID)
	return updated, nil
}

// ensureSettings fetches the guild's settings row, creating it with the
// default threshold when the guild was never configured.
func (s *GuildSettingsService) ensureSettings(ctx context.Context, guildID string) (*models.GuildSetting, error) {
	maybeSetting, err := s.settingsRepo.GetGuildSetting(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild settings: %w", err)
	}
	if setting, ok := maybeSetting.Get(); ok {
		return setting, nil
	}

	setting, err := s.settingsRepo.UpsertAmount(ctx, guildID, models.DefaultPromotionThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to create guild settings: %w", err)
	}
	return setting, nil
}

func (s *GuildSettingsService) invalidate(guildID string) {
	if s.cache != nil {
		s.cache.Remove(guildID)
	}
}

// parseCustomEmoji extracts the snowflake ID when the input denotes a custom
// emoji. Anything else is treated as a unicode emoji.
func parseCustomEmoji(emoji string) (string, bool) {
	matches := customEmojiPattern.FindStringSubmatch(emoji)
	if matches == nil {
		return "", false
	}
	return matches[1], true
}
